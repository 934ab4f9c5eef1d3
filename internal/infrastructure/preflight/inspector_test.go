package preflight

import (
	"testing"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

func TestInspectRejectsUnsupportedExtension(t *testing.T) {
	inspector := NewInspector()

	for _, filename := range []string{"notes.txt", "archive.zip", "report", "run.exe"} {
		_, err := inspector.Inspect(filename, []byte("content"))
		if !domain.IsKind(err, domain.ErrValidation) {
			t.Errorf("Inspect(%q) error = %v, want validation kind", filename, err)
		}
	}
}

func TestInspectRejectsPDFWithoutMagic(t *testing.T) {
	inspector := NewInspector()

	_, err := inspector.Inspect("invoice.pdf", []byte("plain text pretending"))
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation kind", err)
	}
}

func TestInspectRejectsTruncatedPDF(t *testing.T) {
	inspector := NewInspector()

	_, err := inspector.Inspect("invoice.pdf", []byte("%PDF-1.7 truncated"))
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation kind", err)
	}
}

func TestInspectAcceptsNonPDFTypes(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		filename string
		wantType string
	}{
		{"scan.png", "image/png"},
		{"scan.JPG", "image/jpeg"},
		{"contract.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"letter.doc", "application/msword"},
	}
	for _, tt := range tests {
		info, err := inspector.Inspect(tt.filename, []byte("binary payload"))
		if err != nil {
			t.Errorf("Inspect(%q): %v", tt.filename, err)
			continue
		}
		if info.ContentType != tt.wantType {
			t.Errorf("Inspect(%q) content type = %q, want %q", tt.filename, info.ContentType, tt.wantType)
		}
		if info.PageCount != 0 {
			t.Errorf("Inspect(%q) page count = %d, want 0", tt.filename, info.PageCount)
		}
	}
}
