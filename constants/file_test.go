package constants

import "testing"

func TestClassOfExt(t *testing.T) {
	cases := []struct {
		ext  string
		want FileClass
	}{
		{"txt", ClassText},
		{".md", ClassText},
		{"PDF", ClassRich},
		{".DOCX", ClassRich},
		{"png", ClassImage},
		{".jpeg", ClassImage},
		{"exe", ClassBinary},
		{"", ClassBinary},
	}
	for _, c := range cases {
		if got := ClassOfExt(c.ext); got != c.want {
			t.Errorf("ClassOfExt(%q) = %v, want %v", c.ext, got, c.want)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	if got := NormalizeExt(".TIFF"); got != "tiff" {
		t.Fatalf("NormalizeExt(.TIFF) = %q", got)
	}
	if got := NormalizeExt("csv"); got != "csv" {
		t.Fatalf("NormalizeExt(csv) = %q", got)
	}
}

func TestIsSupportedExt(t *testing.T) {
	for _, ext := range []string{"pdf", "png", "txt", "xlsx"} {
		if !IsSupportedExt(ext) {
			t.Errorf("IsSupportedExt(%q) = false", ext)
		}
	}
	if IsSupportedExt("zip") {
		t.Error("IsSupportedExt(zip) = true")
	}
}
