package ports

import (
	"context"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

// DocumentService is the request/response boundary to the remote
// analysis backend. The backend owns every entity; the client holds
// only invalidatable snapshots of what these calls return.
type DocumentService interface {
	CreateDocument(ctx context.Context, upload domain.Upload) (*domain.Document, error)
	GetDocument(ctx context.Context, id string) (*domain.DocumentDetail, error)
	ListDocuments(ctx context.Context, q domain.DocumentQuery) (*domain.DocumentList, error)
	RetryDocument(ctx context.Context, id string) error
	DeleteDocument(ctx context.Context, id string) error
	ResolveAlert(ctx context.Context, id, notes string) error
	GetReport(ctx context.Context, id string) (*domain.Report, error)
	Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResultSet, error)
	ListAlerts(ctx context.Context, q domain.AlertQuery) (*domain.AlertList, error)
	ListAuditLogs(ctx context.Context, page, pageSize int) (*domain.AuditLogList, error)
}

// Identity is the read-only session capability exposed by the auth
// collaborator. The client never inspects credentials itself.
type Identity interface {
	SignedIn() bool
}

// ReportSink persists exported report artifacts and returns the
// written path.
type ReportSink interface {
	WriteJSON(name string, raw []byte) (string, error)
	WriteWorkbook(name string, report *domain.Report) (string, error)
}

// UploadInspector validates a binary payload locally, before any
// network call.
type UploadInspector interface {
	Inspect(filename string, data []byte) (domain.UploadInfo, error)
}
