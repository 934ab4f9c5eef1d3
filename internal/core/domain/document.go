package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "UPLOADED"
	StatusProcessing DocumentStatus = "PROCESSING"
	StatusCompleted  DocumentStatus = "COMPLETED"
	StatusFailed     DocumentStatus = "FAILED"
)

// Terminal reports whether the backend performs no further transition
// from this status without an explicit retry.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type DocumentType string

const (
	TypeInvoice           DocumentType = "INVOICE"
	TypeBankStatement     DocumentType = "BANK_STATEMENT"
	TypeProfitLoss        DocumentType = "PROFIT_LOSS"
	TypeBalanceSheet      DocumentType = "BALANCE_SHEET"
	TypeTaxDocument       DocumentType = "TAX_DOCUMENT"
	TypeFinancialContract DocumentType = "FINANCIAL_CONTRACT"
	TypeUnknown           DocumentType = "UNKNOWN"
)

type Document struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	MimeType         string         `json:"mime_type,omitempty"`
	Status           DocumentStatus `json:"status"`
	DocumentType     DocumentType   `json:"document_type"`
	PageCount        int            `json:"page_count,omitempty"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	RetryCount       int            `json:"retry_count"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// DocumentDetail is the full remote snapshot of one document with all
// derived analysis entities.
type DocumentDetail struct {
	Document
	Extractions []Extraction `json:"extractions"`
	Validations []Validation `json:"validations"`
	RiskFlags   []RiskFlag   `json:"risk_flags"`
}

type DocumentList struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// Extraction holds structured financial fields derived from a document.
// Immutable once created; a multi-page document may carry several.
type Extraction struct {
	ID              string     `json:"id"`
	DocumentID      string     `json:"document_id"`
	VendorName      string     `json:"vendor_name,omitempty"`
	InvoiceNumber   string     `json:"invoice_number,omitempty"`
	InvoiceDate     *time.Time `json:"invoice_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Currency        string     `json:"currency"`
	Subtotal        float64    `json:"subtotal,omitempty"`
	TaxAmount       float64    `json:"tax_amount,omitempty"`
	TotalAmount     float64    `json:"total_amount,omitempty"`
	ConfidenceScore float64    `json:"confidence_score,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Validation records one deterministic consistency check. Immutable.
type Validation struct {
	ID             string         `json:"id"`
	DocumentID     string         `json:"document_id"`
	ValidationType string         `json:"validation_type"`
	IsValid        bool           `json:"is_valid"`
	ExpectedValue  map[string]any `json:"expected_value,omitempty"`
	ActualValue    map[string]any `json:"actual_value,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	Severity       string         `json:"severity,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Upload is a binary payload selected for submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadInfo is what local preflight inspection learned about a payload.
type UploadInfo struct {
	ContentType string
	PageCount   int
}

// DocumentFilter narrows a document listing. Zero values mean "all".
type DocumentFilter struct {
	Status DocumentStatus
	Type   DocumentType
}

type DocumentQuery struct {
	Page     int
	PageSize int
	Filter   DocumentFilter
}
