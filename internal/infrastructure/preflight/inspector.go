// Package preflight inspects upload payloads locally so obviously
// unacceptable files never reach the network.
package preflight

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

var pdfMagic = []byte("%PDF-")

type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) Inspect(filename string, data []byte) (domain.UploadInfo, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return domain.UploadInfo{}, domain.WrapError(domain.ErrValidation, "inspect_upload",
			fmt.Errorf("unsupported file type %q", ext))
	}

	info := domain.UploadInfo{ContentType: contentType}
	if ext != ".pdf" {
		return info, nil
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return domain.UploadInfo{}, domain.WrapError(domain.ErrValidation, "inspect_upload",
			fmt.Errorf("%s does not look like a PDF", filename))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.UploadInfo{}, domain.WrapError(domain.ErrValidation, "inspect_upload",
			fmt.Errorf("unreadable PDF: %w", err))
	}
	info.PageCount = reader.NumPage()
	return info, nil
}
