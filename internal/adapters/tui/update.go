package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/core/usecase"
)

var statusCycle = []domain.DocumentStatus{
	"",
	domain.StatusUploaded,
	domain.StatusProcessing,
	domain.StatusCompleted,
	domain.StatusFailed,
}

var typeCycle = []domain.DocumentType{
	"",
	domain.TypeInvoice,
	domain.TypeBankStatement,
	domain.TypeProfitLoss,
	domain.TypeBalanceSheet,
	domain.TypeTaxDocument,
	domain.TypeFinancialContract,
	domain.TypeUnknown,
}

var riskCycle = []domain.RiskLevel{
	"",
	domain.RiskLow,
	domain.RiskMedium,
	domain.RiskHigh,
	domain.RiskCritical,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case documentsMsg:
		return m.handleDocuments(msg)
	case alertsMsg:
		return m.handleAlerts(msg)
	case auditMsg:
		return m.handleAudit(msg)
	case detailMsg:
		return m.handleDetail(msg)
	case pollTickMsg:
		return m.handlePollTick(msg)
	case searchMsg:
		return m.handleSearch(msg)
	case uploadDoneMsg:
		return m.handleUploadDone(msg)
	case actionDoneMsg:
		return m.handleActionDone(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		return m.switchView(viewDocuments)
	case "2":
		return m.switchView(viewAlerts)
	case "3":
		return m.switchView(viewSearch)
	case "4":
		return m.switchView(viewAudit)
	}

	switch m.view {
	case viewDocuments:
		return m.handleDocumentsKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewAlerts:
		return m.handleAlertsKey(msg)
	case viewSearch:
		return m.handleSearchKey(msg)
	case viewAudit:
		return m.handleAuditKey(msg)
	}
	return m, nil
}

// switchView leaves the current view; leaving the detail page tears
// the observation down so in-flight fetches land on nothing.
func (m Model) switchView(target view) (tea.Model, tea.Cmd) {
	if m.view == target {
		return m, nil
	}
	if m.view == viewDetail && m.detail != nil {
		m.detail.Teardown()
		m.detail = nil
	}
	m.view = target
	m.notice = ""

	switch target {
	case viewDocuments:
		return m, m.fetchDocsCmd(m.docs.Refresh())
	case viewAlerts:
		return m, m.fetchAlertsCmd(m.alerts.Refresh())
	case viewAudit:
		return m, m.fetchAuditCmd(m.audit.Refresh())
	}
	return m, nil
}

func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	if m.view == viewDetail && m.detail != nil {
		m.detail.Teardown()
	}
	m.detail = usecase.NewDetailController(id, m.poller)
	m.view = viewDetail
	m.notice = ""
	return m, fetchDetail(m.svc, m.detail.Observe())
}

func (m Model) handleDocumentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.docCursor = clampCursor(m.docCursor-1, len(m.docs.Items()))
	case "down", "j":
		m.docCursor = clampCursor(m.docCursor+1, len(m.docs.Items()))
	case "right", "n":
		if t, ok := m.docs.NextPage(); ok {
			return m, m.fetchDocsCmd(t)
		}
	case "left", "p":
		if t, ok := m.docs.PrevPage(); ok {
			return m, m.fetchDocsCmd(t)
		}
	case "f":
		filter := m.docs.Filter()
		filter.Status = cycle(statusCycle, filter.Status)
		if t, ok := m.docs.SetFilter(filter); ok {
			m.docCursor = 0
			return m, m.fetchDocsCmd(t)
		}
	case "t":
		filter := m.docs.Filter()
		filter.Type = cycle(typeCycle, filter.Type)
		if t, ok := m.docs.SetFilter(filter); ok {
			m.docCursor = 0
			return m, m.fetchDocsCmd(t)
		}
	case "g":
		return m, m.fetchDocsCmd(m.docs.Refresh())
	case "enter":
		if doc, ok := m.selectedDocument(); ok {
			return m.openDetail(doc.ID)
		}
	case "u":
		m.mode = inputUploadPath
		m.input = ""
	case "r":
		if doc, ok := m.selectedDocument(); ok {
			return m.startRetry(doc)
		}
	case "x":
		if doc, ok := m.selectedDocument(); ok {
			m.mode = inputConfirmDelete
			m.pendingID = doc.ID
		}
	case "e":
		if doc, ok := m.selectedDocument(); ok {
			return m.startExport(doc.ID)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.detail != nil {
			m.detail.Teardown()
			m.detail = nil
		}
		m.view = viewDocuments
		return m, m.fetchDocsCmd(m.docs.Refresh())
	case "g":
		if m.detail != nil {
			return m, fetchDetail(m.svc, m.detail.Refresh())
		}
	case "r":
		if m.detail != nil && m.detail.Snapshot != nil {
			return m.startRetry(m.detail.Snapshot.Document)
		}
	case "x":
		if m.detail != nil {
			m.mode = inputConfirmDelete
			m.pendingID = m.detail.ID()
		}
	case "e":
		if m.detail != nil {
			return m.startExport(m.detail.ID())
		}
	}
	return m, nil
}

func (m Model) handleAlertsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.alertCursor = clampCursor(m.alertCursor-1, len(m.alerts.Items()))
	case "down", "j":
		m.alertCursor = clampCursor(m.alertCursor+1, len(m.alerts.Items()))
	case "right", "n":
		if t, ok := m.alerts.NextPage(); ok {
			return m, m.fetchAlertsCmd(t)
		}
	case "left", "p":
		if t, ok := m.alerts.PrevPage(); ok {
			return m, m.fetchAlertsCmd(t)
		}
	case "f":
		filter := m.alerts.Filter()
		filter.Level = cycle(riskCycle, filter.Level)
		if t, ok := m.alerts.SetFilter(filter); ok {
			m.alertCursor = 0
			return m, m.fetchAlertsCmd(t)
		}
	case "a":
		filter := m.alerts.Filter()
		filter.IncludeResolved = !filter.IncludeResolved
		if t, ok := m.alerts.SetFilter(filter); ok {
			m.alertCursor = 0
			return m, m.fetchAlertsCmd(t)
		}
	case "g":
		return m, m.fetchAlertsCmd(m.alerts.Refresh())
	case "enter":
		alert, ok := m.selectedAlert()
		if !ok {
			break
		}
		if alert.IsResolved {
			m.notice = "alert is already resolved"
			m.noticeErr = true
			break
		}
		m.mode = inputResolveNotes
		m.pendingID = alert.ID
		m.input = ""
	case "o":
		if alert, ok := m.selectedAlert(); ok {
			return m.openDetail(alert.DocumentID)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.mode = inputSearchQuery
		m.input = m.search.Query
	case "up", "k":
		m.searchCursor = clampCursor(m.searchCursor-1, len(m.search.Results))
	case "down", "j":
		m.searchCursor = clampCursor(m.searchCursor+1, len(m.search.Results))
	case "enter":
		if m.searchCursor >= 0 && m.searchCursor < len(m.search.Results) {
			return m.openDetail(m.search.Results[m.searchCursor].DocumentID)
		}
	}
	return m, nil
}

func (m Model) handleAuditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.auditCursor = clampCursor(m.auditCursor-1, len(m.audit.Items()))
	case "down", "j":
		m.auditCursor = clampCursor(m.auditCursor+1, len(m.audit.Items()))
	case "right", "n":
		if t, ok := m.audit.NextPage(); ok {
			return m, m.fetchAuditCmd(t)
		}
	case "left", "p":
		if t, ok := m.audit.PrevPage(); ok {
			return m, m.fetchAuditCmd(t)
		}
	case "g":
		return m, m.fetchAuditCmd(m.audit.Refresh())
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == inputConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			return m.startDelete(m.pendingID)
		case "n", "N", "esc":
			m.mode = inputNone
			m.pendingID = ""
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEscape:
		m.mode = inputNone
		m.input = ""
		m.pendingID = ""
	case tea.KeyEnter:
		return m.commitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// commitInput submits the pending prompt. Validation failures keep the
// prompt open with the typed text intact.
func (m Model) commitInput() (tea.Model, tea.Cmd) {
	switch m.mode {
	case inputUploadPath:
		path := strings.TrimSpace(m.input)
		if path == "" {
			m.notice = "upload: file path is required"
			m.noticeErr = true
			return m, nil
		}
		if !m.dispatcher.Begin(path) {
			m.notice = "upload already in flight for this file"
			m.noticeErr = true
			return m, nil
		}
		m.mode = inputNone
		m.input = ""
		m.notice = "uploading " + path
		m.noticeErr = false
		return m, uploadFile(m.dispatcher, path)

	case inputResolveNotes:
		if strings.TrimSpace(m.input) == "" {
			m.notice = "resolution notes are required"
			m.noticeErr = true
			return m, nil
		}
		id := m.pendingID
		if !m.dispatcher.Begin(id) {
			m.notice = "another action is in flight for this alert"
			m.noticeErr = true
			return m, nil
		}
		notes := m.input
		m.lastNotes = notes
		m.mode = inputNone
		m.input = ""
		m.pendingID = ""
		if !m.alerts.Filter().IncludeResolved {
			m.alerts.RemoveWhere(func(a domain.Alert) bool { return a.ID == id })
			m.alertCursor = clampCursor(m.alertCursor, len(m.alerts.Items()))
		}
		return m, resolveAlert(m.dispatcher, id, notes)

	case inputSearchQuery:
		ticket, query, err := m.search.Submit(m.input, m.searchTopK)
		if err != nil {
			m.notice = errorText(err)
			m.noticeErr = true
			return m, nil
		}
		m.mode = inputNone
		m.input = ""
		m.searchCursor = 0
		return m, runSearch(m.svc, ticket, query)
	}
	return m, nil
}

func (m Model) startRetry(doc domain.Document) (tea.Model, tea.Cmd) {
	if !m.dispatcher.Begin(doc.ID) {
		m.notice = "another action is in flight for this document"
		m.noticeErr = true
		return m, nil
	}
	return m, retryDocument(m.dispatcher, doc)
}

func (m Model) startDelete(id string) (tea.Model, tea.Cmd) {
	m.mode = inputNone
	m.pendingID = ""
	if !m.dispatcher.Begin(id) {
		m.notice = "another action is in flight for this document"
		m.noticeErr = true
		return m, nil
	}
	m.docs.RemoveWhere(func(d domain.Document) bool { return d.ID == id })
	m.docCursor = clampCursor(m.docCursor, len(m.docs.Items()))
	return m, deleteDocument(m.dispatcher, id)
}

func (m Model) startExport(id string) (tea.Model, tea.Cmd) {
	if !m.dispatcher.Begin(id) {
		m.notice = "another action is in flight for this document"
		m.noticeErr = true
		return m, nil
	}
	m.notice = "exporting report..."
	m.noticeErr = false
	return m, exportReport(m.dispatcher, id)
}

func (m Model) handleDocuments(msg documentsMsg) (tea.Model, tea.Cmd) {
	outcome := m.docs.Apply(msg.ticket, msg.page, msg.err)
	m.recordFetch("documents", outcome.Applied)
	if !outcome.Applied {
		return m, nil
	}
	m.docCursor = clampCursor(m.docCursor, len(m.docs.Items()))
	if outcome.Refetch != nil {
		return m, m.fetchDocsCmd(*outcome.Refetch)
	}
	return m, nil
}

func (m Model) handleAlerts(msg alertsMsg) (tea.Model, tea.Cmd) {
	outcome := m.alerts.Apply(msg.ticket, msg.page, msg.err)
	m.recordFetch("alerts", outcome.Applied)
	if !outcome.Applied {
		return m, nil
	}
	m.alertCursor = clampCursor(m.alertCursor, len(m.alerts.Items()))
	if outcome.Refetch != nil {
		return m, m.fetchAlertsCmd(*outcome.Refetch)
	}
	return m, nil
}

func (m Model) handleAudit(msg auditMsg) (tea.Model, tea.Cmd) {
	outcome := m.audit.Apply(msg.ticket, msg.page, msg.err)
	m.recordFetch("audit", outcome.Applied)
	if !outcome.Applied {
		return m, nil
	}
	m.auditCursor = clampCursor(m.auditCursor, len(m.audit.Items()))
	if outcome.Refetch != nil {
		return m, m.fetchAuditCmd(*outcome.Refetch)
	}
	return m, nil
}

func (m Model) handleDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	armedBefore := m.poller.State(msg.ticket.ID) == usecase.PollArmed
	outcome := m.detail.Apply(msg.ticket, msg.detail, msg.err)
	m.recordFetch("detail", outcome.Applied)
	if !outcome.Applied {
		return m, nil
	}
	armedAfter := m.poller.State(msg.ticket.ID) == usecase.PollArmed
	if m.metrics != nil && armedBefore != armedAfter {
		direction := "armed"
		if !armedAfter {
			direction = "disarmed"
		}
		m.metrics.RecordPollTransition(direction, m.poller.ArmedCount())
	}
	if outcome.ScheduleNext {
		return m, pollTick(m.poller.Interval(), msg.ticket.ID)
	}
	return m, nil
}

func (m Model) handlePollTick(msg pollTickMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil || m.detail.ID() != msg.id {
		return m, nil
	}
	ticket, ok := m.detail.Tick()
	if !ok {
		return m, nil
	}
	return m, fetchDetail(m.svc, ticket)
}

func (m Model) handleSearch(msg searchMsg) (tea.Model, tea.Cmd) {
	if !m.search.Apply(msg.ticket, msg.set, msg.err) {
		m.recordFetch("search", false)
		return m, nil
	}
	m.recordFetch("search", true)
	m.searchCursor = clampCursor(m.searchCursor, len(m.search.Results))
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.dispatcher.Finish(msg.path)
	m.recordAction("upload", msg.err)
	if msg.err != nil {
		m.logger.Warn("upload rejected", "path", msg.path, "err", msg.err)
		m.notice = errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}
	m.notice = fmt.Sprintf("uploaded %s (%s)", msg.doc.OriginalFilename, msg.doc.Status)
	m.noticeErr = false
	return m, m.fetchDocsCmd(m.docs.Refresh())
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	m.dispatcher.Finish(msg.id)
	m.recordAction(msg.action, msg.err)

	if msg.err != nil {
		m.logger.Warn("action failed", "action", msg.action, "id", msg.id, "err", msg.err)
		m.notice = errorText(msg.err)
		m.noticeErr = true
		switch msg.action {
		case "delete":
			m.docs.Rollback()
		case "resolve":
			m.alerts.Rollback()
			// reopen the prompt with the typed notes intact
			if domain.IsKind(msg.err, domain.ErrValidation) {
				m.mode = inputResolveNotes
				m.pendingID = msg.id
				m.input = m.lastNotes
			}
		}
		return m, nil
	}

	m.notice = msg.action + " succeeded"
	m.noticeErr = false

	// Consistency re-fetch: the authoritative state after a mutation
	// is whatever the backend reports now.
	switch msg.action {
	case "retry":
		if m.view == viewDetail && m.detail != nil && m.detail.ID() == msg.id {
			return m, fetchDetail(m.svc, m.detail.Refresh())
		}
		return m, m.fetchDocsCmd(m.docs.Refresh())
	case "delete":
		if m.view == viewDetail && m.detail != nil && m.detail.ID() == msg.id {
			m.detail.Teardown()
			m.detail = nil
			m.view = viewDocuments
		}
		return m, m.fetchDocsCmd(m.docs.Refresh())
	case "resolve":
		m.lastNotes = ""
		return m, m.fetchAlertsCmd(m.alerts.Refresh())
	}
	return m, nil
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.dispatcher.Finish(msg.id)
	m.recordAction("export", msg.err)
	if msg.err != nil {
		m.notice = errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}
	m.notice = "exported " + msg.artifacts.JSONPath + " and " + msg.artifacts.WorkbookPath
	m.noticeErr = false
	return m, nil
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func errorText(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return "invalid input: " + rootDetail(err)
	case domain.IsKind(err, domain.ErrConflict):
		return "rejected: " + rootDetail(err)
	case domain.IsKind(err, domain.ErrNotFound):
		return "not found: " + rootDetail(err)
	default:
		return "request failed: " + rootDetail(err)
	}
}

func rootDetail(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	if i := strings.LastIndex(text, ": "); i >= 0 && i+2 < len(text) {
		return text[i+2:]
	}
	return text
}
