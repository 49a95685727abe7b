package extractor

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDFText extracts the embedded text layer of a PDF with the in-process
// parser. Pages that fail to decode are skipped; a file that cannot be opened
// or parsed at all returns an error.
func (e *Extractor) readPDFText(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return "", 0, err
	}

	pages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			ft := p.Font(name)
			fonts[name] = &ft
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), pages, nil
}
