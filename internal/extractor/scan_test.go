package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestIsPDFScanned_Density(t *testing.T) {
	tests := []struct {
		name        string
		chars       int
		pages       int
		wantScanned bool
	}{
		{name: "sparse text, assume scan", chars: 60, pages: 3, wantScanned: true},
		{name: "dense text", chars: 600, pages: 3, wantScanned: false},
		// 50 chars/page is NOT scanned: the rule is strictly < 50.
		{name: "exact threshold", chars: 150, pages: 3, wantScanned: false},
		{name: "just under threshold", chars: 149, pages: 3, wantScanned: true},
		{name: "empty pdf", chars: 0, pages: 1, wantScanned: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestExtractor(t, allFail)
			e.pdfTextFn = func(string) (string, int, error) {
				return strings.Repeat("a", tc.chars), tc.pages, nil
			}
			got := e.IsPDFScanned(context.Background(), "/docs/x.pdf")
			if got.IsScanned != tc.wantScanned {
				t.Fatalf("IsScanned = %v (%.1f chars/page), want %v",
					got.IsScanned, got.CharsPerPage, tc.wantScanned)
			}
			if got.TextLength != tc.chars || got.PageCount != tc.pages {
				t.Fatalf("TextLength=%d PageCount=%d, want %d and %d",
					got.TextLength, got.PageCount, tc.chars, tc.pages)
			}
		})
	}
}

func TestIsPDFScanned_ZeroPages(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	e.pdfTextFn = func(string) (string, int, error) {
		return strings.Repeat("a", 200), 0, nil
	}
	got := e.IsPDFScanned(context.Background(), "/docs/x.pdf")
	// Denominator clamps to 1: 200 chars on "0 pages" is clearly not a scan.
	if got.IsScanned {
		t.Fatalf("IsScanned = true (%.1f chars/page), want false", got.CharsPerPage)
	}
}

func TestIsPDFScanned_UnparseableAssumesScanned(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	e.pdfTextFn = func(string) (string, int, error) {
		return "", 0, errors.New("malformed trailer")
	}
	got := e.IsPDFScanned(context.Background(), "/docs/x.pdf")
	if !got.IsScanned {
		t.Fatal("unparseable PDF must fail safe toward the OCR path")
	}
	if got.Error == "" {
		t.Fatal("expected the parse error to be carried in the assessment")
	}
}
