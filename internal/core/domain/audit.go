package domain

import "time"

// AuditLogEntry is an append-only record of a system or operator
// action. The client never mutates or deletes these.
type AuditLogEntry struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id,omitempty"`
	DocumentID   string         `json:"document_id,omitempty"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Description  string         `json:"description,omitempty"`
	Changes      map[string]any `json:"changes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type AuditLogList struct {
	Logs  []AuditLogEntry `json:"logs"`
	Total int             `json:"total"`
}
