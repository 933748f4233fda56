package resume

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageTextFunc returns the plain text of each page of the document at path.
type PageTextFunc func(path string) ([]string, error)

// PDFPageText reads per-page plain text from a PDF file. Pages without content are skipped.
func PDFPageText(path string) (pages []string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
