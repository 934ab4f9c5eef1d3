// Package tui is the interactive console: a thin event-driven shell
// over the synchronization controllers. All state mutation happens on
// the update loop; network calls run as commands and come back as
// messages.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/core/ports"
	"github.com/mkuznetsov/finsight/internal/core/usecase"
	"github.com/mkuznetsov/finsight/internal/observability/metrics"
)

type view int

const (
	viewDocuments view = iota
	viewDetail
	viewAlerts
	viewSearch
	viewAudit
)

type inputMode int

const (
	inputNone inputMode = iota
	inputUploadPath
	inputResolveNotes
	inputSearchQuery
	inputConfirmDelete
)

// Deps carries everything the console needs; wiring happens in
// bootstrap.
type Deps struct {
	Service    ports.DocumentService
	Dispatcher *usecase.Dispatcher
	Poller     *usecase.Poller
	Logger     *slog.Logger
	Metrics    *metrics.SyncMetrics

	PageSize   int
	SearchTopK int
}

type Model struct {
	svc        ports.DocumentService
	dispatcher *usecase.Dispatcher
	poller     *usecase.Poller
	logger     *slog.Logger
	metrics    *metrics.SyncMetrics

	searchTopK int

	view view

	docs   *usecase.ListController[domain.Document, domain.DocumentFilter]
	alerts *usecase.ListController[domain.Alert, domain.AlertFilter]
	audit  *usecase.ListController[domain.AuditLogEntry, struct{}]
	search *usecase.SearchController
	detail *usecase.DetailController

	docCursor    int
	alertCursor  int
	auditCursor  int
	searchCursor int

	mode      inputMode
	input     string
	pendingID string

	// lastNotes keeps the typed resolution notes across a failed
	// resolve so the prompt reopens with the input intact.
	lastNotes string

	notice    string
	noticeErr bool

	width  int
	height int
}

func NewModel(deps Deps) Model {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		svc:        deps.Service,
		dispatcher: deps.Dispatcher,
		poller:     deps.Poller,
		logger:     logger,
		metrics:    deps.Metrics,
		searchTopK: deps.SearchTopK,
		view:       viewDocuments,
		docs:       usecase.NewListController[domain.Document](pageSize, domain.DocumentFilter{}),
		alerts:     usecase.NewListController[domain.Alert](pageSize, domain.AlertFilter{}),
		audit:      usecase.NewListController[domain.AuditLogEntry](pageSize, struct{}{}),
		search:     usecase.NewSearchController(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchDocsCmd(m.docs.Refresh())
}

func (m Model) fetchDocsCmd(t usecase.ListTicket) tea.Cmd {
	return fetchDocuments(m.svc, t, domain.DocumentQuery{
		Page:     t.Page,
		PageSize: m.docs.PageSize(),
		Filter:   m.docs.Filter(),
	})
}

func (m Model) fetchAlertsCmd(t usecase.ListTicket) tea.Cmd {
	return fetchAlerts(m.svc, t, domain.AlertQuery{
		Page:     t.Page,
		PageSize: m.alerts.PageSize(),
		Filter:   m.alerts.Filter(),
	})
}

func (m Model) fetchAuditCmd(t usecase.ListTicket) tea.Cmd {
	return fetchAuditLogs(m.svc, t, m.audit.PageSize())
}

func (m Model) selectedDocument() (domain.Document, bool) {
	items := m.docs.Items()
	if m.docCursor < 0 || m.docCursor >= len(items) {
		return domain.Document{}, false
	}
	return items[m.docCursor], true
}

func (m Model) selectedAlert() (domain.Alert, bool) {
	items := m.alerts.Items()
	if m.alertCursor < 0 || m.alertCursor >= len(items) {
		return domain.Alert{}, false
	}
	return items[m.alertCursor], true
}

func (m Model) recordFetch(viewName string, applied bool) {
	if m.metrics != nil {
		m.metrics.RecordFetch(viewName, applied)
	}
	if !applied {
		m.logger.Debug("stale fetch discarded", "view", viewName)
	}
}

func (m Model) recordAction(action string, err error) {
	if m.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.RecordAction(action, status)
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
