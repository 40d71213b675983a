// Package pdf extracts page-level text from PDF files.
// It is a thin wrapper over github.com/ledongthuc/pdf; pages that yield no
// extractable text are skipped.
package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"docchat/internal/indexer"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor extracts normalized page text from PDF files on disk.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the text of each page that yielded extractable content,
// with runs of whitespace collapsed to single spaces. Page numbers are 1-based
// and refer to the raw PDF page, so gaps appear where pages had no text.
func (e *Extractor) ExtractPages(path string) ([]indexer.PageText, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var pages []indexer.PageText
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		text := NormalizeText(raw)
		if text == "" {
			continue
		}
		pages = append(pages, indexer.PageText{Text: text, Page: i})
	}

	return pages, nil
}

// NormalizeText collapses all whitespace runs to single spaces and trims the result.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
