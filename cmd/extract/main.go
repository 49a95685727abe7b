package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/extractor"
)

// extract runs the extraction cascade on one file and prints the result to
// stdout. No database involved; useful for checking what a document yields
// before ingesting it.
func main() {
	var (
		scan   = flag.Bool("scan", false, "only assess whether a PDF is scanned")
		raster = flag.Bool("raster", false, "rasterize a scanned PDF and list the page images")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: extract [-scan|-raster] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	ex := extractor.NewExtractor(extractor.Config{
		DataDir:     cfg.Extractor.DataDir,
		Markitdown:  cfg.Extractor.Markitdown,
		Pdftoppm:    cfg.Extractor.Pdftoppm,
		Magick:      cfg.Extractor.Magick,
		DPI:         cfg.Extractor.DPI,
		RichTimeout: cfg.Extractor.RichTimeout,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch {
	case *scan:
		a := ex.IsPDFScanned(ctx, path)
		fmt.Printf("scanned=%t pages=%d chars=%d chars_per_page=%.1f\n",
			a.IsScanned, a.PageCount, a.TextLength, a.CharsPerPage)
		if a.Error != "" {
			fmt.Printf("parse_error=%s\n", a.Error)
		}
	case *raster:
		images, err := ex.ConvertPDFToImages(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rasterize: %v\n", err)
			os.Exit(1)
		}
		if images == nil {
			fmt.Fprintln(os.Stderr, "rasterize: no converter available or no pages produced")
			os.Exit(1)
		}
		for _, img := range images {
			fmt.Println(img)
		}
	default:
		start := time.Now()
		out := ex.Extract(ctx, path)
		logger.Warn("extract done",
			"method", out.Method,
			"bytes", len(out.Text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		fmt.Print(out.Text)
	}
}
