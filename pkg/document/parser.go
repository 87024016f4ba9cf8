package document

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ContentTypePDF is the only accepted upload type.
const ContentTypePDF = "application/pdf"

var (
	ErrUnsupportedFormat = errors.New("unsupported document format: only pdf is allowed")
	ErrEmptyDocument     = errors.New("empty document")
)

var pdfMagic = []byte("%PDF-")

var (
	reBlanks   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(`\n+`)
)

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// ExtractText returns the plain text of every page in order.
// Pages that fail to decode are skipped; an unreadable file is an error.
func ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if !IsPDF(data) {
		return "", ErrUnsupportedFormat
	}
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(txt)
		b.WriteByte('\n')
	}
	return normalizeWhitespace(b.String()), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
