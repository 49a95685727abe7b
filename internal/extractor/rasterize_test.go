package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writePages simulates a rasterizer dropping page files next to the
// out-prefix its caller passed as the final argument.
func writePages(t *testing.T, outPrefix string, pages ...string) {
	t.Helper()
	for _, p := range pages {
		if err := os.WriteFile(outPrefix+p, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestConvertPDFToImages_NumericPageOrder(t *testing.T) {
	var e *Extractor
	e, _ = newTestExtractor(t, func(name string, args []string) ([]byte, error) {
		if name != e.cfg.Pdftoppm {
			return nil, errors.New("unexpected tool: " + name)
		}
		writePages(t, args[len(args)-1], "-2.png", "-10.png", "-1.png")
		return nil, nil
	})

	images, err := e.ConvertPDFToImages(context.Background(), "/docs/big report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 3 {
		t.Fatalf("got %d images, want 3", len(images))
	}
	wantOrder := []string{"big_report-1.png", "big_report-2.png", "big_report-10.png"}
	for i, want := range wantOrder {
		if got := filepath.Base(images[i]); got != want {
			t.Fatalf("images[%d] = %q, want %q (numeric, not lexicographic, order)", i, got, want)
		}
	}
}

func TestConvertPDFToImages_FallsBackToMagick(t *testing.T) {
	var e *Extractor
	var r *stubRunner
	e, r = newTestExtractor(t, func(name string, args []string) ([]byte, error) {
		switch name {
		case e.cfg.Pdftoppm:
			return nil, errors.New("pdftoppm: command not found")
		case e.cfg.Magick:
			// magick gets "<prefix>-%d.png" as its output template
			prefix := args[len(args)-1]
			prefix = prefix[:len(prefix)-len("-%d.png")]
			writePages(t, prefix, "-1.png", "-2.png")
			return nil, nil
		default:
			return nil, errors.New("unexpected tool: " + name)
		}
	})

	images, err := e.ConvertPDFToImages(context.Background(), "/docs/scan.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}
	if r.countCalls(e.cfg.Pdftoppm, "") != 1 || r.countCalls(e.cfg.Magick, "") != 1 {
		t.Fatalf("expected one pdftoppm attempt then one magick attempt, got %v", r.calls)
	}
}

func TestConvertPDFToImages_TotalFailureReturnsNil(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	images, err := e.ConvertPDFToImages(context.Background(), "/docs/scan.pdf")
	if err != nil {
		t.Fatalf("tool failure must not surface as an error, got %v", err)
	}
	if images != nil {
		t.Fatalf("got %v, want nil", images)
	}
}

func TestConvertPDFToImages_NoOutputReturnsNil(t *testing.T) {
	// Tools "succeed" but write nothing: still a nil result, not a crash.
	e, _ := newTestExtractor(t, func(name string, args []string) ([]byte, error) {
		return nil, nil
	})
	images, err := e.ConvertPDFToImages(context.Background(), "/docs/empty.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if images != nil {
		t.Fatalf("got %v, want nil", images)
	}
}

func TestConvertPDFToImages_IgnoresForeignFiles(t *testing.T) {
	var e *Extractor
	e, _ = newTestExtractor(t, func(name string, args []string) ([]byte, error) {
		outPrefix := args[len(args)-1]
		writePages(t, outPrefix, "-1.png", "-2.png")
		dir := filepath.Dir(outPrefix)
		// leftovers from other documents and non-page files
		for _, junk := range []string{"other_doc-1.png", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, junk), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		return nil, nil
	})

	images, err := e.ConvertPDFToImages(context.Background(), "/docs/mine.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2: %v", len(images), images)
	}
}
