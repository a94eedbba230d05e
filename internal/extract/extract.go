package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyText means the PDF parsed but contained no extractable text,
// for example a scanned image-only document.
var ErrEmptyText = errors.New("no extractable text")

// ErrUnreadable means the bytes could not be parsed as a PDF at all.
var ErrUnreadable = errors.New("unreadable pdf")

// Text extracts plain text from PDF bytes.
func Text(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// TextFromReader reads all of r and extracts text from it.
func TextFromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	return Text(data)
}
