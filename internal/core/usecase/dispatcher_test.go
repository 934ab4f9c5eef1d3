package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

type serviceFake struct {
	created  *domain.Upload
	retried  []string
	deleted  []string
	resolved map[string]string

	retryErr   error
	deleteErr  error
	resolveErr error
	report     *domain.Report
	reportErr  error
}

func newServiceFake() *serviceFake {
	return &serviceFake{resolved: make(map[string]string)}
}

func (f *serviceFake) CreateDocument(_ context.Context, upload domain.Upload) (*domain.Document, error) {
	f.created = &upload
	return &domain.Document{ID: "doc-1", Status: domain.StatusUploaded}, nil
}

func (f *serviceFake) GetDocument(context.Context, string) (*domain.DocumentDetail, error) {
	return nil, errors.New("not used")
}

func (f *serviceFake) ListDocuments(context.Context, domain.DocumentQuery) (*domain.DocumentList, error) {
	return nil, errors.New("not used")
}

func (f *serviceFake) RetryDocument(_ context.Context, id string) error {
	f.retried = append(f.retried, id)
	return f.retryErr
}

func (f *serviceFake) DeleteDocument(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *serviceFake) ResolveAlert(_ context.Context, id, notes string) error {
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolved[id] = notes
	return nil
}

func (f *serviceFake) GetReport(context.Context, string) (*domain.Report, error) {
	return f.report, f.reportErr
}

func (f *serviceFake) Search(context.Context, domain.SearchQuery) (*domain.SearchResultSet, error) {
	return nil, errors.New("not used")
}

func (f *serviceFake) ListAlerts(context.Context, domain.AlertQuery) (*domain.AlertList, error) {
	return nil, errors.New("not used")
}

func (f *serviceFake) ListAuditLogs(context.Context, int, int) (*domain.AuditLogList, error) {
	return nil, errors.New("not used")
}

type sinkFake struct {
	jsonName string
	jsonRaw  []byte
	xlsxName string
	jsonErr  error
}

func (f *sinkFake) WriteJSON(name string, raw []byte) (string, error) {
	if f.jsonErr != nil {
		return "", f.jsonErr
	}
	f.jsonName = name
	f.jsonRaw = raw
	return "/tmp/" + name, nil
}

func (f *sinkFake) WriteWorkbook(name string, _ *domain.Report) (string, error) {
	f.xlsxName = name
	return "/tmp/" + name, nil
}

type inspectorFake struct {
	info domain.UploadInfo
	err  error
}

func (f *inspectorFake) Inspect(string, []byte) (domain.UploadInfo, error) {
	return f.info, f.err
}

func newTestDispatcher(svc *serviceFake, sink *sinkFake, inspector *inspectorFake) *Dispatcher {
	d := NewDispatcher(svc, sink, inspector, 50<<20)
	d.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return d
}

func TestDispatcherUploadRejectsOversizedPayload(t *testing.T) {
	svc := newServiceFake()
	d := NewDispatcher(svc, &sinkFake{}, &inspectorFake{}, 10)

	_, err := d.Upload(context.Background(), "big.pdf", make([]byte, 11))
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("oversize error kind = %v, want ErrValidation", err)
	}
	if svc.created != nil {
		t.Fatalf("oversized payload must never reach the network")
	}
}

func TestDispatcherUploadRejectsEmptyPayload(t *testing.T) {
	svc := newServiceFake()
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{})

	_, err := d.Upload(context.Background(), "empty.pdf", nil)
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("empty payload error kind = %v, want ErrValidation", err)
	}
}

func TestDispatcherUploadRejectsWhenInspectionFails(t *testing.T) {
	svc := newServiceFake()
	inspectErr := domain.WrapError(domain.ErrValidation, "inspect", errors.New("not a pdf"))
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{err: inspectErr})

	_, err := d.Upload(context.Background(), "fake.pdf", []byte("MZ garbage"))
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("inspection failure kind = %v, want ErrValidation", err)
	}
	if svc.created != nil {
		t.Fatalf("rejected payload must never reach the network")
	}
}

func TestDispatcherUploadSubmitsAcceptedPayload(t *testing.T) {
	svc := newServiceFake()
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{
		info: domain.UploadInfo{ContentType: "application/pdf", PageCount: 2},
	})

	doc, err := d.Upload(context.Background(), "/uploads/invoice-march.pdf", []byte("%PDF-1.7 data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("new document status = %s, want UPLOADED", doc.Status)
	}
	if svc.created.Filename != "invoice-march.pdf" {
		t.Fatalf("uploaded filename = %q, want base name", svc.created.Filename)
	}
	if svc.created.ContentType != "application/pdf" {
		t.Fatalf("content type = %q", svc.created.ContentType)
	}
}

func TestDispatcherRetryRequiresFailedStatus(t *testing.T) {
	svc := newServiceFake()
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{})

	err := d.Retry(context.Background(), &domain.Document{ID: "doc-1", Status: domain.StatusCompleted})
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("retry of COMPLETED kind = %v, want ErrConflict", err)
	}
	if len(svc.retried) != 0 {
		t.Fatalf("precondition failure must not reach the network")
	}

	if err := d.Retry(context.Background(), &domain.Document{ID: "doc-1", Status: domain.StatusFailed}); err != nil {
		t.Fatalf("retry of FAILED document error = %v", err)
	}
	if len(svc.retried) != 1 || svc.retried[0] != "doc-1" {
		t.Fatalf("expected one retry call for doc-1, got %v", svc.retried)
	}
}

func TestDispatcherDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	svc := newServiceFake()
	svc.deleteErr = domain.WrapError(domain.ErrNotFound, "delete", errors.New("gone"))
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{})

	if err := d.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("double-delete should be idempotent, got %v", err)
	}

	svc.deleteErr = domain.WrapError(domain.ErrTransport, "delete", errors.New("timeout"))
	if err := d.Delete(context.Background(), "doc-1"); !domain.IsKind(err, domain.ErrTransport) {
		t.Fatalf("transport error must surface, got %v", err)
	}
}

func TestDispatcherResolveValidatesNotes(t *testing.T) {
	svc := newServiceFake()
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{})

	for _, notes := range []string{"", "   ", "\n\t"} {
		err := d.Resolve(context.Background(), "alert-1", notes)
		if !domain.IsKind(err, domain.ErrValidation) {
			t.Fatalf("Resolve(%q) kind = %v, want ErrValidation", notes, err)
		}
	}
	if len(svc.resolved) != 0 {
		t.Fatalf("blank notes must never reach the network")
	}

	if err := d.Resolve(context.Background(), "alert-1", "  reviewed  "); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if svc.resolved["alert-1"] != "reviewed" {
		t.Fatalf("notes should be trimmed, got %q", svc.resolved["alert-1"])
	}
}

func TestDispatcherResolveSurfacesConflict(t *testing.T) {
	svc := newServiceFake()
	svc.resolveErr = domain.WrapError(domain.ErrConflict, "resolve", errors.New("already resolved"))
	d := newTestDispatcher(svc, &sinkFake{}, &inspectorFake{})

	err := d.Resolve(context.Background(), "alert-1", "reviewed")
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("double-resolve kind = %v, want ErrConflict", err)
	}
}

func TestDispatcherExportWritesArtifacts(t *testing.T) {
	svc := newServiceFake()
	svc.report = &domain.Report{
		Document: domain.Document{ID: "doc-1", OriginalFilename: "Q3 Invoice.pdf"},
		Raw:      []byte(`{"document":{"id":"doc-1"}}`),
	}
	sink := &sinkFake{}
	d := newTestDispatcher(svc, sink, &inspectorFake{})

	artifacts, err := d.Export(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	want := "Audit-Report-Q3 Invoice-2026-08-31.json"
	if sink.jsonName != want {
		t.Fatalf("json artifact = %q, want %q", sink.jsonName, want)
	}
	if string(sink.jsonRaw) != `{"document":{"id":"doc-1"}}` {
		t.Fatalf("report must be exported verbatim, got %s", sink.jsonRaw)
	}
	if !strings.HasSuffix(sink.xlsxName, ".xlsx") {
		t.Fatalf("workbook artifact = %q", sink.xlsxName)
	}
	if artifacts.JSONPath == "" || artifacts.WorkbookPath == "" {
		t.Fatalf("artifact paths should be returned, got %+v", artifacts)
	}
}

func TestDispatcherExportFetchFailureWritesNothing(t *testing.T) {
	svc := newServiceFake()
	svc.reportErr = domain.WrapError(domain.ErrTransport, "report", errors.New("timeout"))
	sink := &sinkFake{}
	d := newTestDispatcher(svc, sink, &inspectorFake{})

	if _, err := d.Export(context.Background(), "doc-1"); !domain.IsKind(err, domain.ErrTransport) {
		t.Fatalf("export fetch failure kind = %v, want ErrTransport", err)
	}
	if sink.jsonName != "" || sink.xlsxName != "" {
		t.Fatalf("failed export must not produce artifacts")
	}
}

func TestDispatcherSingleMutationPerEntity(t *testing.T) {
	d := newTestDispatcher(newServiceFake(), &sinkFake{}, &inspectorFake{})

	if !d.Begin("doc-1") {
		t.Fatalf("first Begin should reserve the entity")
	}
	if d.Begin("doc-1") {
		t.Fatalf("overlapping mutation for the same entity must be refused")
	}
	if !d.Begin("doc-2") {
		t.Fatalf("a different entity is independent")
	}
	d.Finish("doc-1")
	if !d.Begin("doc-1") {
		t.Fatalf("entity should be free again after Finish")
	}
}
