package ingest

import "testing"

func TestAllowedExt(t *testing.T) {
	for ext, want := range map[string]bool{
		"pdf":  true,
		"PDF":  true,
		"docx": true,
		"txt":  true,
		"png":  true,
		"exe":  false,
		"":     false,
	} {
		if got := AllowedExt(ext); got != want {
			t.Fatalf("AllowedExt(%q) = %v, want %v", ext, got, want)
		}
	}
}

func TestIsHidden(t *testing.T) {
	if !IsHidden("/data/.cache") {
		t.Fatal("dotted base must be hidden")
	}
	if IsHidden("/data/.cache/visible.pdf") {
		t.Fatal("only the base name decides hidden-ness")
	}
	if IsHidden("report.pdf") {
		t.Fatal("plain file is not hidden")
	}
}
