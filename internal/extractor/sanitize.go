package extractor

import "strings"

// ocrPreambles are boilerplate openers some vision models prepend to their
// transcription. Matched case-insensitively against the start of the output.
var ocrPreambles = []string{
	"here is the text extracted from the image:",
	"here is the extracted text:",
	"here is the text from the image:",
	"the text extracted from the image is:",
	"the image contains the following text:",
	"analysis of the image:",
}

// CleanOCROutput strips known vision-model preambles from OCR text and trims
// surrounding whitespace. Vision output is consumed downstream as if it were
// raw extracted text, so leading commentary would corrupt parsing.
func CleanOCROutput(text string) string {
	if text == "" {
		return ""
	}
	s := strings.TrimSpace(text)
	for _, p := range ocrPreambles {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	return s
}
