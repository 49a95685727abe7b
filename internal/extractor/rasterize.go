package extractor

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// pageNumSuffix captures the page number pdftoppm/magick embed in filenames.
var pageNumSuffix = regexp.MustCompile(`^-0*(\d+)\.png$`)

// ConvertPDFToImages rasterizes every page of a PDF to PNG under
// <DataDir>/temp/pdf_images, for hand-off to the vision/OCR pipeline.
// Primary tool is pdftoppm; on any primary failure it retries once with
// ImageMagick. Returned paths are ordered by page number ascending
// (numeric, so page-2 sorts before page-10). Total tool failure returns
// nil without an error; only an uncreatable output directory is a real
// error, since that means the data dir itself is broken.
func (e *Extractor) ConvertPDFToImages(ctx context.Context, pdfPath string) ([]string, error) {
	outDir := filepath.Join(e.cfg.DataDir, "temp", "pdf_images")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	base := filepath.Base(pdfPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	prefix := nonAlnum.ReplaceAllString(base, "_")
	outPrefix := filepath.Join(outDir, prefix)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RasterTimeout)
	defer cancel()

	dpi := strconv.Itoa(e.cfg.DPI)
	// pdftoppm -png -r 150 <pdf> <prefix>
	_, _, err := e.runner.Run(ctx, 0, e.cfg.Pdftoppm, "-png", "-r", dpi, pdfPath, outPrefix)
	if err != nil {
		e.logger.Warn("pdftoppm failed, trying imagemagick",
			"file", base, "error", err)
		// magick -density 150 <pdf> <prefix>-%d.png
		_, _, err = e.runner.Run(ctx, 0, e.cfg.Magick, "-density", dpi, pdfPath, outPrefix+"-%d.png")
		if err != nil {
			e.logger.Warn("pdf rasterization failed with both tools",
				"file", base, "error", err)
			return nil, nil
		}
	}

	images, err := listPageImages(outDir, prefix)
	if err != nil {
		e.logger.Warn("listing rasterized pages failed", "dir", outDir, "error", err)
		return nil, nil
	}
	if len(images) == 0 {
		e.logger.Warn("rasterization produced no images", "file", base)
		return nil, nil
	}
	return images, nil
}

// listPageImages collects <prefix>-<n>.png files in dir, sorted numerically
// by page number.
func listPageImages(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type page struct {
		num  int
		path string
	}
	var pages []page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		m := pageNumSuffix.FindStringSubmatch(name[len(prefix):])
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, page{num: n, path: filepath.Join(dir, name)})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.path
	}
	return out, nil
}
