// Package pdftext pulls a short plain-text excerpt from the first pages of a
// PDF. Used as a second chance when a filename matches no category synonym.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	maxPeekPages = 3
	maxPeekChars = 2000
)

// Peek returns up to maxPeekChars of text from the first pages. Encrypted or
// image-only PDFs yield an empty excerpt without an error.
func Peek(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	pages := reader.NumPage()
	if pages > maxPeekPages {
		pages = maxPeekPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		if b.Len() >= maxPeekChars {
			break
		}
	}

	excerpt := b.String()
	if len(excerpt) > maxPeekChars {
		excerpt = excerpt[:maxPeekChars]
	}
	return excerpt, nil
}
