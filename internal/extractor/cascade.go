package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rpad300/godmode-docs/constants"
)

// OutcomeKind says what ReadFileContent's string actually carries.
type OutcomeKind int

const (
	// KindText is real extracted content.
	KindText OutcomeKind = iota
	// KindImageSentinel is the "[IMAGE:<path>]" marker for the vision pipeline.
	KindImageSentinel
	// KindPlaceholder is the "could not extract" marker.
	KindPlaceholder
	// KindBinaryPlaceholder is the "binary file" marker.
	KindBinaryPlaceholder
)

// Outcome is the typed result behind ReadFileContent. Strict callers (the
// extraction pipeline) branch on Kind; simple callers take Text as-is.
type Outcome struct {
	Text   string
	Method string // "markitdown" | "pdf-text" | "plain" | ""
	Kind   OutcomeKind
}

// strategy is one tier of the rich-conversion cascade. ok=false means
// "move on to the next tier", whatever the reason.
type strategy struct {
	name string
	fn   func(ctx context.Context, path string) (string, bool)
}

// ReadFileContent is the primary entry point: extension-dispatched extraction
// that never fails. Every failure mode degrades to an informative placeholder
// string so a batch run over many documents is never aborted by one bad file.
func (e *Extractor) ReadFileContent(ctx context.Context, filePath string) string {
	return e.Extract(ctx, filePath).Text
}

// Extract is ReadFileContent with the outcome kind preserved.
func (e *Extractor) Extract(ctx context.Context, filePath string) Outcome {
	ext := constants.NormalizeExt(filepath.Ext(filePath))
	name := filepath.Base(filePath)

	switch constants.ClassOfExt(ext) {
	case constants.ClassImage:
		// Never attempt text extraction; the caller routes these to a
		// vision model instead.
		return Outcome{
			Text: fmt.Sprintf("[IMAGE:%s]", filePath),
			Kind: KindImageSentinel,
		}

	case constants.ClassText:
		b, err := os.ReadFile(filePath)
		if err != nil {
			e.logger.Warn("plain read failed", "file", name, "error", err)
			return placeholderOutcome(name)
		}
		return Outcome{Text: string(b), Method: "plain", Kind: KindText}

	case constants.ClassRich:
		for _, s := range e.richStrategies(ext) {
			if text, ok := s.fn(ctx, filePath); ok {
				return Outcome{Text: text, Method: s.name, Kind: KindText}
			}
		}
		return placeholderOutcome(name)

	default:
		b, err := os.ReadFile(filePath)
		if err != nil || !utf8.Valid(b) {
			return Outcome{
				Text: fmt.Sprintf("[Binary file: %s - Could not read as text]", name),
				Kind: KindBinaryPlaceholder,
			}
		}
		return Outcome{Text: string(b), Method: "plain", Kind: KindText}
	}
}

// richStrategies returns the ordered tiers for a rich-format extension.
// Only PDFs get the in-process fallback; other rich formats have no
// second tier beyond the external converter.
func (e *Extractor) richStrategies(ext string) []strategy {
	s := []strategy{{name: "markitdown", fn: e.tryRichTool}}
	if ext == "pdf" {
		s = append(s, strategy{name: "pdf-text", fn: e.tryPDFText})
	}
	return s
}

func (e *Extractor) tryRichTool(ctx context.Context, path string) (string, bool) {
	res := e.ConvertViaRichTool(ctx, path)
	// Accept only conversions with real substance; near-empty output is
	// usually garbage and the next tier does better.
	if !res.Success || len(res.Content) <= e.cfg.MinRichContentLen {
		return "", false
	}
	return res.Content, true
}

func (e *Extractor) tryPDFText(_ context.Context, path string) (string, bool) {
	text, _, err := e.pdfTextFn(path)
	if err != nil {
		e.logger.Warn("pdf text fallback failed", "file", filepath.Base(path), "error", err)
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func placeholderOutcome(name string) Outcome {
	return Outcome{
		Text: fmt.Sprintf("[Could not extract content from %s]", name),
		Kind: KindPlaceholder,
	}
}
