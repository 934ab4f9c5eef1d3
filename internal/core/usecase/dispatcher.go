package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/core/ports"
)

const defaultMaxUploadBytes = 50 << 20

// Dispatcher executes user-triggered mutations against the remote
// service. Preconditions are rejected locally before any network call;
// at most one mutation runs per target entity at a time, enforced by
// the Begin/Finish guards from the owning event loop.
type Dispatcher struct {
	svc       ports.DocumentService
	sink      ports.ReportSink
	inspector ports.UploadInspector

	maxUploadBytes int64
	inflight       map[string]bool
	now            func() time.Time
}

func NewDispatcher(svc ports.DocumentService, sink ports.ReportSink, inspector ports.UploadInspector, maxUploadBytes int64) *Dispatcher {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Dispatcher{
		svc:            svc,
		sink:           sink,
		inspector:      inspector,
		maxUploadBytes: maxUploadBytes,
		inflight:       make(map[string]bool),
		now:            time.Now,
	}
}

// Begin reserves the target entity for one mutation. It returns false
// while another mutation for the same id is still in flight.
func (d *Dispatcher) Begin(id string) bool {
	if d.inflight[id] {
		return false
	}
	d.inflight[id] = true
	return true
}

func (d *Dispatcher) Finish(id string) {
	delete(d.inflight, id)
}

// Upload validates the payload locally (size ceiling, accepted type,
// PDF sniff) and creates a document in UPLOADED state.
func (d *Dispatcher) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	if len(data) == 0 {
		return nil, domain.WrapError(domain.ErrValidation, "upload", errors.New("empty payload"))
	}
	if int64(len(data)) > d.maxUploadBytes {
		return nil, domain.WrapError(domain.ErrValidation, "upload",
			fmt.Errorf("payload is %d bytes, ceiling is %d", len(data), d.maxUploadBytes))
	}

	info, err := d.inspector.Inspect(filename, data)
	if err != nil {
		return nil, err
	}

	doc, err := d.svc.CreateDocument(ctx, domain.Upload{
		Filename:    filepath.Base(filename),
		ContentType: info.ContentType,
		Data:        data,
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Retry re-triggers server-side processing for a failed document.
func (d *Dispatcher) Retry(ctx context.Context, doc *domain.Document) error {
	if doc.Status != domain.StatusFailed {
		return domain.WrapError(domain.ErrConflict, "retry",
			fmt.Errorf("document is %s, only FAILED documents can be retried", doc.Status))
	}
	return d.svc.RetryDocument(ctx, doc.ID)
}

// Delete removes the document and all dependent entities. A document
// that already disappeared counts as success.
func (d *Dispatcher) Delete(ctx context.Context, id string) error {
	err := d.svc.DeleteDocument(ctx, id)
	if domain.IsKind(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// Resolve marks a risk flag as resolved with the operator's notes.
// Empty notes are rejected locally; an already-resolved flag surfaces
// the backend's conflict, it is never re-sent.
func (d *Dispatcher) Resolve(ctx context.Context, id, notes string) error {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return domain.WrapError(domain.ErrValidation, "resolve", errors.New("resolution notes are required"))
	}
	return d.svc.ResolveAlert(ctx, id, trimmed)
}

// ExportArtifacts are the files one export action produced.
type ExportArtifacts struct {
	JSONPath     string
	WorkbookPath string
}

// Export fetches the current report snapshot and writes it as a JSON
// artifact plus an XLSX audit workbook. Export never mutates any
// entity; a failure leaves nothing behind but a possibly partial file.
func (d *Dispatcher) Export(ctx context.Context, id string) (ExportArtifacts, error) {
	report, err := d.svc.GetReport(ctx, id)
	if err != nil {
		return ExportArtifacts{}, err
	}

	raw := report.Raw
	if len(raw) == 0 {
		if raw, err = json.Marshal(report); err != nil {
			return ExportArtifacts{}, domain.WrapError(domain.ErrTransport, "export", err)
		}
	}

	base := exportBaseName(report.Document.OriginalFilename, d.now().UTC())
	jsonPath, err := d.sink.WriteJSON(base+".json", raw)
	if err != nil {
		return ExportArtifacts{}, domain.WrapError(domain.ErrTransport, "export", err)
	}
	workbookPath, err := d.sink.WriteWorkbook(base+".xlsx", report)
	if err != nil {
		return ExportArtifacts{}, domain.WrapError(domain.ErrTransport, "export", err)
	}
	return ExportArtifacts{JSONPath: jsonPath, WorkbookPath: workbookPath}, nil
}

// exportBaseName builds "Audit-Report-<basename-without-ext>-<ISO date>".
func exportBaseName(filename string, now time.Time) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "document"
	}
	return fmt.Sprintf("Audit-Report-%s-%s", base, now.Format("2006-01-02"))
}
