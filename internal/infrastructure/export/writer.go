// Package export writes report artifacts to the local filesystem:
// the backend's JSON verbatim plus a reviewer-friendly XLSX workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

type Writer struct {
	basePath string
}

func NewWriter(basePath string) (*Writer, error) {
	if basePath == "" {
		basePath = "./exports"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Writer{basePath: basePath}, nil
}

func (w *Writer) WriteJSON(name string, raw []byte) (string, error) {
	path := filepath.Join(w.basePath, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write json artifact: %w", err)
	}
	return path, nil
}

func (w *Writer) WriteWorkbook(name string, report *domain.Report) (string, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := writeSummarySheet(book, report); err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	if err := writeExtractionSheet(book, report.Extractions); err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	if err := writeValidationSheet(book, report.Validations); err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	if err := writeRiskSheet(book, report.RiskFlags); err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}

	path := filepath.Join(w.basePath, name)
	if err := book.SaveAs(path); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	return path, nil
}

func writeSummarySheet(book *excelize.File, report *domain.Report) error {
	const sheet = "Summary"
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	doc := report.Document
	rows := [][]any{
		{"Document", doc.OriginalFilename},
		{"Document ID", doc.ID},
		{"Type", string(doc.DocumentType)},
		{"Status", string(doc.Status)},
		{"Pages", doc.PageCount},
		{"File size (bytes)", doc.FileSize},
		{"Uploaded", formatTimeCell(doc.CreatedAt)},
		{"Generated", formatTimeCell(report.GeneratedAt)},
		{"Extractions", len(report.Extractions)},
		{"Validations", len(report.Validations)},
		{"Risk flags", len(report.RiskFlags)},
		{"Open risk flags", countOpenFlags(report.RiskFlags)},
	}
	return writeRows(book, sheet, rows)
}

func writeExtractionSheet(book *excelize.File, extractions []domain.Extraction) error {
	const sheet = "Extractions"
	if _, err := book.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]any{{
		"Vendor", "Invoice #", "Invoice date", "Due date",
		"Currency", "Subtotal", "Tax", "Total", "Confidence",
	}}
	for _, e := range extractions {
		rows = append(rows, []any{
			e.VendorName, e.InvoiceNumber,
			formatDateCell(e.InvoiceDate), formatDateCell(e.DueDate),
			e.Currency, e.Subtotal, e.TaxAmount, e.TotalAmount,
			e.ConfidenceScore,
		})
	}
	return writeRows(book, sheet, rows)
}

func writeValidationSheet(book *excelize.File, validations []domain.Validation) error {
	const sheet = "Validations"
	if _, err := book.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]any{{"Check", "Result", "Severity", "Detail"}}
	for _, v := range validations {
		result := "PASS"
		if !v.IsValid {
			result = "FAIL"
		}
		rows = append(rows, []any{v.ValidationType, result, v.Severity, v.ErrorMessage})
	}
	return writeRows(book, sheet, rows)
}

func writeRiskSheet(book *excelize.File, flags []domain.RiskFlag) error {
	const sheet = "Risk Flags"
	if _, err := book.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]any{{"Type", "Level", "Description", "Resolved", "Resolution notes"}}
	for _, f := range flags {
		resolved := "no"
		if f.IsResolved {
			resolved = "yes"
		}
		rows = append(rows, []any{
			f.RiskType, string(f.RiskLevel), f.Description, resolved, f.ResolutionNotes,
		})
	}
	return writeRows(book, sheet, rows)
}

func writeRows(book *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func countOpenFlags(flags []domain.RiskFlag) int {
	open := 0
	for _, f := range flags {
		if !f.IsResolved {
			open++
		}
	}
	return open
}

func formatTimeCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatDateCell(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
