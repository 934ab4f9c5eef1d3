package tui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/core/ports"
	"github.com/mkuznetsov/finsight/internal/core/usecase"
)

func fetchDocuments(svc ports.DocumentService, t usecase.ListTicket, q domain.DocumentQuery) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.ListDocuments(context.Background(), q)
		if err != nil {
			return documentsMsg{ticket: t, err: err}
		}
		return documentsMsg{ticket: t, page: usecase.ListPage[domain.Document]{
			Items: list.Documents,
			Total: list.Total,
		}}
	}
}

func fetchAlerts(svc ports.DocumentService, t usecase.ListTicket, q domain.AlertQuery) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.ListAlerts(context.Background(), q)
		if err != nil {
			return alertsMsg{ticket: t, err: err}
		}
		return alertsMsg{ticket: t, page: usecase.ListPage[domain.Alert]{
			Items: list.Alerts,
			Total: list.Total,
		}}
	}
}

func fetchAuditLogs(svc ports.DocumentService, t usecase.ListTicket, pageSize int) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.ListAuditLogs(context.Background(), t.Page, pageSize)
		if err != nil {
			return auditMsg{ticket: t, err: err}
		}
		return auditMsg{ticket: t, page: usecase.ListPage[domain.AuditLogEntry]{
			Items: list.Logs,
			Total: list.Total,
		}}
	}
}

func fetchDetail(svc ports.DocumentService, t usecase.FetchTicket) tea.Cmd {
	return func() tea.Msg {
		detail, err := svc.GetDocument(context.Background(), t.ID)
		return detailMsg{ticket: t, detail: detail, err: err}
	}
}

// pollTick starts the single outstanding re-fetch timer for an
// observed document.
func pollTick(interval time.Duration, id string) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{id: id}
	})
}

func runSearch(svc ports.DocumentService, t usecase.SearchTicket, q domain.SearchQuery) tea.Cmd {
	return func() tea.Msg {
		set, err := svc.Search(context.Background(), q)
		return searchMsg{ticket: t, set: set, err: err}
	}
}

func uploadFile(dispatcher *usecase.Dispatcher, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadDoneMsg{path: path, err: domain.WrapError(domain.ErrValidation, "upload", err)}
		}
		doc, err := dispatcher.Upload(context.Background(), path, data)
		return uploadDoneMsg{path: path, doc: doc, err: err}
	}
}

func retryDocument(dispatcher *usecase.Dispatcher, doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		err := dispatcher.Retry(context.Background(), &doc)
		return actionDoneMsg{action: "retry", id: doc.ID, err: err}
	}
}

func deleteDocument(dispatcher *usecase.Dispatcher, id string) tea.Cmd {
	return func() tea.Msg {
		err := dispatcher.Delete(context.Background(), id)
		return actionDoneMsg{action: "delete", id: id, err: err}
	}
}

func resolveAlert(dispatcher *usecase.Dispatcher, id, notes string) tea.Cmd {
	return func() tea.Msg {
		err := dispatcher.Resolve(context.Background(), id, notes)
		return actionDoneMsg{action: "resolve", id: id, err: err}
	}
}

func exportReport(dispatcher *usecase.Dispatcher, id string) tea.Cmd {
	return func() tea.Msg {
		artifacts, err := dispatcher.Export(context.Background(), id)
		return exportDoneMsg{id: id, artifacts: artifacts, err: err}
	}
}
