package domain

import (
	"encoding/json"
	"time"
)

// Report is the audit-ready snapshot the backend assembles for one
// document. Raw keeps the backend's JSON verbatim so the exported
// artifact is byte-identical to what the service produced.
type Report struct {
	Document    Document     `json:"document"`
	Extractions []Extraction `json:"extractions"`
	Validations []Validation `json:"validations"`
	RiskFlags   []RiskFlag   `json:"risk_flags"`
	GeneratedAt time.Time    `json:"generated_at"`

	Raw json.RawMessage `json:"-"`
}
