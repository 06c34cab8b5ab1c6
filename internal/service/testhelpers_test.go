package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"pdf-upload-server/internal/domain"
)

// mockServiceLogger discards all log output.
type mockServiceLogger struct{}

func newMockServiceLogger() domain.Logger { return &mockServiceLogger{} }

func (l *mockServiceLogger) Info(msg string, fields ...interface{})             {}
func (l *mockServiceLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockServiceLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockServiceLogger) Warn(msg string, fields ...interface{})             {}

type testPart struct {
	fieldName string
	fileName  string
	mediaType string
	content   []byte
}

// buildMultipartBody assembles a multipart/form-data body from the given
// parts and returns the encoded bytes plus the boundary.
func buildMultipartBody(t *testing.T, parts []testPart) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, part := range parts {
		header := make(textproto.MIMEHeader)
		if part.fileName != "" {
			header.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, part.fieldName, part.fileName))
			header.Set("Content-Type", part.mediaType)
		} else {
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, part.fieldName))
		}
		pw, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create multipart part: %v", err)
		}
		if _, err := pw.Write(part.content); err != nil {
			t.Fatalf("failed to write multipart part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return buf.Bytes(), writer.Boundary()
}

// multipartReaderFor wraps an encoded body in a streaming multipart reader.
func multipartReaderFor(body []byte, boundary string) *multipart.Reader {
	return multipart.NewReader(bytes.NewReader(body), boundary)
}

// buildTestPDF writes a minimal single-font PDF with one page per entry in
// pageTexts, each page showing its text as one uncompressed Tj operation.
func buildTestPDF(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// Object layout: 1=catalog, 2=pages, 3=font, then a page/content pair
	// per entry (page i at 4+2i, its content stream at 5+2i).
	kids := make([]string, 0, len(pageTexts))
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}

	addObject("<< /Type /Catalog /Pages 2 0 R >>")
	addObject(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pageTexts)))
	addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, text := range pageTexts {
		contentRef := 5 + i*2
		addObject(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentRef))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		addObject(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefPos)

	return buf.Bytes()
}
