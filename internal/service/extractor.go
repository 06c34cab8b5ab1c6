package service

import (
	"bytes"
	"fmt"
	"strings"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// PDFExtractor recovers the embedded text layer of a PDF. Only the text layer
// is read; scanned (image-only) PDFs come back empty and are reported as an
// extraction failure.
type PDFExtractor struct {
	logger domain.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{
		logger: logger,
	}
}

// Extract opens data as a PDF and returns its text. Pages are tokenized
// concurrently; the final document is always assembled in ascending page
// order, pages joined by a single space, tokens within a page concatenated in
// extraction order with no separator.
func (e *PDFExtractor) Extract(data []byte) (*domain.ExtractedDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperrors.NewParseError("Invalid PDF", fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err))
	}

	total := reader.NumPage()
	pages := make([]string, total)

	var g errgroup.Group
	for i := 1; i <= total; i++ {
		g.Go(func() error {
			text, err := pageText(reader, i)
			if err != nil {
				return apperrors.NewParseError("Invalid PDF", fmt.Errorf("page %d: %w", i, err))
			}
			pages[i-1] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc, err := buildDocument(pages)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Extracted PDF text", "pages", total, "chars", len(doc.Text))
	return doc, nil
}

// pageText concatenates a page's text tokens in the order the parser reports
// them. The parser panics on some malformed content streams, so the panic is
// converted into an error here.
func pageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrInvalidPDF, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	var sb strings.Builder
	for _, token := range page.Content().Text {
		sb.WriteString(token.S)
	}
	return sb.String(), nil
}

// buildDocument joins per-page texts, in page order, into the whole-document
// text. A document that is empty after trimming whitespace is an extraction
// failure so callers can distinguish scanned documents.
func buildDocument(pages []string) (*domain.ExtractedDocument, error) {
	text := strings.Join(pages, " ")
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewEmptyTextError("no extractable text in document", domain.ErrEmptyText)
	}
	return &domain.ExtractedDocument{
		Pages: pages,
		Text:  text,
	}, nil
}
