package tui

import (
	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/core/usecase"
)

// Fetch results carry the ticket they were issued under so the owning
// controller can reconcile them against its fence.

type documentsMsg struct {
	ticket usecase.ListTicket
	page   usecase.ListPage[domain.Document]
	err    error
}

type alertsMsg struct {
	ticket usecase.ListTicket
	page   usecase.ListPage[domain.Alert]
	err    error
}

type auditMsg struct {
	ticket usecase.ListTicket
	page   usecase.ListPage[domain.AuditLogEntry]
	err    error
}

type detailMsg struct {
	ticket usecase.FetchTicket
	detail *domain.DocumentDetail
	err    error
}

// pollTickMsg fires when the poll timer for an observed document
// elapses.
type pollTickMsg struct {
	id string
}

type searchMsg struct {
	ticket usecase.SearchTicket
	set    *domain.SearchResultSet
	err    error
}

type uploadDoneMsg struct {
	path string
	doc  *domain.Document
	err  error
}

// actionDoneMsg reports completion of a retry, delete or resolve
// mutation for the entity it was started on.
type actionDoneMsg struct {
	action string
	id     string
	err    error
}

type exportDoneMsg struct {
	id        string
	artifacts usecase.ExportArtifacts
	err       error
}
