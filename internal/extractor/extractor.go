package extractor

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// availability is the memoized result of probing for the rich-conversion tool.
type availability int

const (
	availabilityUnknown availability = iota
	availabilityAvailable
	availabilityUnavailable
)

type Config struct {
	DataDir string // working data directory; page images go under <DataDir>/temp/pdf_images

	Markitdown string // binary name or absolute path; if empty -> "markitdown"
	Pdftoppm   string // binary name or absolute path; if empty -> "pdftoppm"
	Magick     string // binary name or absolute path; if empty -> "magick"

	DPI               int           // rasterization DPI, default 150 (floor for legible OCR)
	RichTimeout       time.Duration // rich-conversion subprocess timeout, default 120s
	ProbeTimeout      time.Duration // availability probe timeout, default 5s
	RasterTimeout     time.Duration // rasterizer subprocess timeout, default 120s
	MaxOutputBytes    int64         // stdout cap for the rich tool, default 50MB
	MinRichContentLen int           // minimum accepted conversion length, default 100
	ScanCharsPerPage  float64       // scanned-PDF threshold, default 50
}

// Extractor turns an arbitrary input file into extracted text, an image
// sentinel, or a set of per-page PNGs for the vision pipeline. It is
// stateless with respect to documents; the only process-lifetime state is
// the rich-tool availability cache.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	// pdfTextFn extracts the embedded text layer of a PDF.
	// A field so tests can substitute fixture text.
	pdfTextFn func(path string) (text string, pages int, err error)

	mu       sync.Mutex
	richTool availability
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Markitdown == "" {
		cfg.Markitdown = "markitdown"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Magick == "" {
		cfg.Magick = "magick"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	if cfg.RichTimeout <= 0 {
		cfg.RichTimeout = 120 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.RasterTimeout <= 0 {
		cfg.RasterTimeout = 120 * time.Second
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = 50 << 20
	}
	if cfg.MinRichContentLen <= 0 {
		cfg.MinRichContentLen = 100
	}
	if cfg.ScanCharsPerPage <= 0 {
		cfg.ScanCharsPerPage = 50
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	e.pdfTextFn = e.readPDFText
	return e
}

// RichToolAvailable probes for the rich-conversion tool on first call and
// memoizes the answer for the Extractor's lifetime. It never returns an
// error: any spawn failure means "unavailable".
func (e *Extractor) RichToolAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.richTool == availabilityUnknown {
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ProbeTimeout)
		defer cancel()
		if _, _, err := e.runner.Run(ctx, 1<<20, e.cfg.Markitdown, "--version"); err != nil {
			e.richTool = availabilityUnavailable
			e.logger.Debug("rich conversion tool not available", "tool", e.cfg.Markitdown, "error", err)
		} else {
			e.richTool = availabilityAvailable
			e.logger.Debug("rich conversion tool available", "tool", e.cfg.Markitdown)
		}
	}
	return e.richTool == availabilityAvailable
}
