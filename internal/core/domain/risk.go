package domain

import "time"

type RiskLevel string

const (
	RiskNone     RiskLevel = "NONE"
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Rank maps a level to its position in the severity order
// LOW < MEDIUM < HIGH < CRITICAL. Unknown levels rank below NONE.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskNone:
		return 0
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return -1
	}
}

// RiskFlag is a detected anomaly requiring operator review.
// ResolutionNotes are set if and only if IsResolved is true.
type RiskFlag struct {
	ID              string         `json:"id"`
	DocumentID      string         `json:"document_id"`
	RiskType        string         `json:"risk_type"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Description     string         `json:"description"`
	AIExplanation   string         `json:"ai_explanation,omitempty"`
	Evidence        map[string]any `json:"evidence,omitempty"`
	IsResolved      bool           `json:"is_resolved"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
	ResolutionNotes string         `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Alert is a risk flag joined with its parent document's filename,
// used for cross-document triage. Resolving an alert resolves the
// underlying risk flag.
type Alert struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	DocumentFilename string    `json:"document_filename"`
	RiskType         string    `json:"risk_type"`
	RiskLevel        RiskLevel `json:"risk_level"`
	Description      string    `json:"description"`
	IsResolved       bool      `json:"is_resolved"`
	CreatedAt        time.Time `json:"created_at"`
}

type AlertList struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
}

// AlertFilter narrows an alert listing. The zero value lists
// unresolved alerts of every level.
type AlertFilter struct {
	Level           RiskLevel
	IncludeResolved bool
}

type AlertQuery struct {
	Page     int
	PageSize int
	Filter   AlertFilter
}
