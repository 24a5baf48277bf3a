// Package pdfext extracts plain text from uploaded PDF files so the rest of
// the application can summarize and generate study material from it.
package pdfext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction errors
var (
	// ErrInvalidPDF is returned when the uploaded bytes cannot be parsed as a PDF.
	ErrInvalidPDF = errors.New("file is not a valid PDF")

	// ErrNoText is returned when the PDF parses but contains no extractable
	// text (e.g. scanned images without an OCR layer).
	ErrNoText = errors.New("no extractable text in PDF")
)

// Extraction holds the text pulled out of one PDF.
type Extraction struct {
	Content   string
	PageCount int
}

// Extract parses the PDF bytes and returns the concatenated plain text of
// all pages. Pages that fail text extraction are skipped; the document only
// fails when no page yields any text.
func Extract(data []byte) (*Extraction, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, ErrNoText
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	content := b.String()
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoText
	}

	return &Extraction{
		Content:   content,
		PageCount: numPages,
	}, nil
}

// Chunk splits content into pieces no longer than maxChars, preferring
// paragraph boundaries and falling back to hard splits for oversized
// paragraphs. Returns nil for empty content.
func Chunk(content string, maxChars int) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if maxChars <= 0 || len(content) <= maxChars {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Hard-split paragraphs that alone exceed the budget.
		for len(para) > maxChars {
			flush()
			chunks = append(chunks, para[:maxChars])
			para = para[maxChars:]
		}
		if para == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
