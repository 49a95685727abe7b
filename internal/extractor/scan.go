package extractor

import (
	"context"
	"path/filepath"
	"strings"
)

// ScanAssessment is the classifier's verdict on whether a PDF is an
// image-only scan.
type ScanAssessment struct {
	IsScanned    bool
	TextLength   int
	PageCount    int
	CharsPerPage float64
	Error        string
}

// IsPDFScanned decides whether a PDF has no usable text layer, based on
// extracted-text density. The threshold is a tuned heuristic: a PDF with one
// short line per page gets misclassified as scanned, an accepted
// false-positive trading throughput for OCR safety. An unparseable PDF is
// assumed scanned, since no readable text layer is exactly what that suggests.
func (e *Extractor) IsPDFScanned(ctx context.Context, filePath string) ScanAssessment {
	if err := ctx.Err(); err != nil {
		return ScanAssessment{IsScanned: true, Error: err.Error()}
	}

	text, pages, err := e.pdfTextFn(filePath)
	if err != nil {
		e.logger.Warn("scan check: pdf unparseable, assuming scanned",
			"file", filepath.Base(filePath), "error", err)
		return ScanAssessment{IsScanned: true, Error: err.Error()}
	}

	textLen := len(strings.TrimSpace(text))
	denom := pages
	if denom < 1 {
		denom = 1
	}
	charsPerPage := float64(textLen) / float64(denom)

	return ScanAssessment{
		IsScanned:    charsPerPage < e.cfg.ScanCharsPerPage,
		TextLength:   textLen,
		PageCount:    pages,
		CharsPerPage: charsPerPage,
	}
}
