package extractor

import (
	"context"
	"path/filepath"
)

// ExtractionResult is the outcome of one rich-conversion attempt.
type ExtractionResult struct {
	Success bool
	Content string
	Method  string
	Error   string
}

// ConvertViaRichTool shells out to the rich document converter with the file
// path as its sole argument, capturing stdout as the converted text. A single
// attempt, hard 120s timeout, 50MB output cap; any failure comes back as
// {Success: false} rather than an error — the cascade's next tier is the
// retry path.
func (e *Extractor) ConvertViaRichTool(ctx context.Context, filePath string) ExtractionResult {
	if !e.RichToolAvailable() {
		return ExtractionResult{Success: false, Error: "markitdown not installed"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RichTimeout)
	defer cancel()

	out, _, err := e.runner.Run(ctx, e.cfg.MaxOutputBytes, e.cfg.Markitdown, filePath)
	if err != nil {
		e.logger.Warn("rich conversion failed",
			"file", filepath.Base(filePath),
			"error", err,
		)
		return ExtractionResult{Success: false, Error: err.Error()}
	}

	content := string(out)
	e.logger.Debug("rich conversion ok",
		"file", filepath.Base(filePath),
		"chars", len(content),
	)
	return ExtractionResult{Success: true, Content: content, Method: "markitdown"}
}
