package extractor

import "testing"

func TestCleanOCROutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips preamble and trims",
			in:   "Here is the text extracted from the image:\n  Hello world  ",
			want: "Hello world",
		},
		{
			name: "case insensitive",
			in:   "HERE IS THE TEXT EXTRACTED FROM THE IMAGE: invoice #42",
			want: "invoice #42",
		},
		{
			name: "analysis preamble",
			in:   "Analysis of the image:\ntotal due 12.50",
			want: "total due 12.50",
		},
		{
			name: "no preamble untouched",
			in:   "  plain transcription  ",
			want: "plain transcription",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "preamble only",
			in:   "Here is the extracted text:",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanOCROutput(tc.in); got != tc.want {
				t.Fatalf("CleanOCROutput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
