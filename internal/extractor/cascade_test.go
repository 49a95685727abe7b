package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// stubRunner fakes subprocess execution and records every invocation.
type stubRunner struct {
	mu      sync.Mutex
	calls   [][]string
	handler func(name string, args []string) (stdout []byte, err error)
}

func (r *stubRunner) Run(_ context.Context, _ int64, name string, args ...string) ([]byte, []byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()
	if r.handler == nil {
		return nil, nil, errors.New("no handler")
	}
	out, err := r.handler(name, args)
	return out, nil, err
}

func (r *stubRunner) countCalls(name string, arg0 string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c[0] == name && (arg0 == "" || (len(c) > 1 && c[1] == arg0)) {
			n++
		}
	}
	return n
}

func newTestExtractor(t *testing.T, handler func(name string, args []string) (stdout []byte, err error)) (*Extractor, *stubRunner) {
	t.Helper()
	r := &stubRunner{handler: handler}
	e := NewExtractor(Config{DataDir: t.TempDir()}, nil)
	e.runner = r
	return e, r
}

// allFail makes every subprocess fail, so the rich tool probes as unavailable.
func allFail(string, []string) ([]byte, error) {
	return nil, errors.New("exec: not found")
}

func TestReadFileContent_TextRoundTrip(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	for _, ext := range []string{"txt", "md", "json", "csv", "log"} {
		content := "line one\nline two: " + ext
		path := filepath.Join(t.TempDir(), "f."+ext)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if got := e.ReadFileContent(context.Background(), path); got != content {
			t.Fatalf("ext %s: got %q, want %q", ext, got, content)
		}
	}
}

func TestReadFileContent_ImageSentinel(t *testing.T) {
	e, r := newTestExtractor(t, allFail)
	for _, ext := range []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "svg", "tiff", "tif"} {
		path := "/data/uploads/photo." + ext
		want := fmt.Sprintf("[IMAGE:%s]", path)
		if got := e.ReadFileContent(context.Background(), path); got != want {
			t.Fatalf("ext %s: got %q, want %q", ext, got, want)
		}
	}
	if n := len(r.calls); n != 0 {
		t.Fatalf("image dispatch spawned %d subprocesses, want 0", n)
	}
}

func TestReadFileContent_DocxNoFallback(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	got := e.ReadFileContent(context.Background(), "/docs/report.docx")
	want := "[Could not extract content from report.docx]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadFileContent_PDFFallsBackToLibrary(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	const libText = "text layer pulled by the in-process parser"
	e.pdfTextFn = func(string) (string, int, error) { return libText, 2, nil }

	if got := e.ReadFileContent(context.Background(), "/docs/contract.pdf"); got != libText {
		t.Fatalf("got %q, want %q", got, libText)
	}
}

func TestReadFileContent_PDFAllTiersFail(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)
	e.pdfTextFn = func(string) (string, int, error) { return "", 0, errors.New("bad xref") }

	got := e.ReadFileContent(context.Background(), "/docs/broken.pdf")
	want := "[Could not extract content from broken.pdf]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadFileContent_RichAcceptanceBoundary(t *testing.T) {
	// Exactly 100 chars must be rejected (> 100 rule); 101 accepted.
	for _, tc := range []struct {
		chars      int
		wantRich   bool
	}{
		{chars: 100, wantRich: false},
		{chars: 101, wantRich: true},
	} {
		richOut := strings.Repeat("x", tc.chars)
		e, _ := newTestExtractor(t, func(name string, args []string) ([]byte, error) {
			return []byte(richOut), nil
		})
		const libText = "fallback text from the pdf library"
		e.pdfTextFn = func(string) (string, int, error) { return libText, 1, nil }

		got := e.ReadFileContent(context.Background(), "/docs/a.pdf")
		if tc.wantRich && got != richOut {
			t.Fatalf("%d chars: expected rich output accepted, got %q", tc.chars, got)
		}
		if !tc.wantRich && got != libText {
			t.Fatalf("%d chars: expected fallback to pdf library, got %q", tc.chars, got)
		}
	}
}

func TestReadFileContent_BinaryPlaceholder(t *testing.T) {
	e, _ := newTestExtractor(t, allFail)

	path := filepath.Join(t.TempDir(), "blob.dat")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}
	got := e.ReadFileContent(context.Background(), path)
	want := "[Binary file: blob.dat - Could not read as text]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Readable UTF-8 with an unknown extension comes through as-is.
	path2 := filepath.Join(t.TempDir(), "notes.cfg")
	if err := os.WriteFile(path2, []byte("key=value"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := e.ReadFileContent(context.Background(), path2); got != "key=value" {
		t.Fatalf("got %q, want %q", got, "key=value")
	}

	// Missing file degrades to the same placeholder, never an abort.
	got = e.ReadFileContent(context.Background(), "/nope/gone.dat")
	want = "[Binary file: gone.dat - Could not read as text]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAvailabilityProbedOnce(t *testing.T) {
	e, r := newTestExtractor(t, func(name string, args []string) ([]byte, error) {
		return []byte(strings.Repeat("y", 200)), nil
	})
	for i := 0; i < 5; i++ {
		_ = e.ReadFileContent(context.Background(), "/docs/a.docx")
	}
	if n := r.countCalls(e.cfg.Markitdown, "--version"); n != 1 {
		t.Fatalf("version probe ran %d times across 5 extractions, want exactly 1", n)
	}
}

func TestAvailabilityProbedOnce_WhenUnavailable(t *testing.T) {
	e, r := newTestExtractor(t, allFail)
	for i := 0; i < 5; i++ {
		res := e.ConvertViaRichTool(context.Background(), "/docs/a.docx")
		if res.Success {
			t.Fatal("expected failure when tool is unavailable")
		}
	}
	if n := r.countCalls(e.cfg.Markitdown, "--version"); n != 1 {
		t.Fatalf("version probe ran %d times, want exactly 1", n)
	}
	// No conversion attempt is spawned once the probe said unavailable.
	if n := len(r.calls); n != 1 {
		t.Fatalf("%d subprocesses spawned, want 1 (the probe)", n)
	}
}
