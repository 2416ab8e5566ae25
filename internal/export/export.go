// Package export renders a titled text as a downloadable plain text or PDF
// file.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Renderer turns a title and body into file bytes.
type Renderer interface {
	Render(title, content string) ([]byte, error)

	// Extension returns the file extension including the dot.
	Extension() string

	ContentType() string
}

// ForFormat returns the renderer for "txt" or "pdf".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "txt", "text":
		return &TextRenderer{}, nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename builds a download name from title, e.g. "Mercury_planet.pdf".
func Filename(title string, r Renderer) string {
	var b strings.Builder
	underscore := false
	for _, c := range strings.TrimSpace(title) {
		switch {
		case c == '/' || c == '\\' || c == '"' || c < ' ':
			continue
		case c == ' ' || c == '(' || c == ')':
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		default:
			b.WriteRune(c)
			underscore = false
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "export"
	}
	return name + r.Extension()
}

// TextRenderer writes "Title: <title>", a blank line, then the content.
type TextRenderer struct{}

func (r *TextRenderer) Render(title, content string) ([]byte, error) {
	return []byte("Title: " + title + "\n\n" + content), nil
}

func (r *TextRenderer) Extension() string   { return ".txt" }
func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// PDFRenderer lays out a bold 16pt title over an 11pt body on Letter pages.
// Core fonts only cover Windows-1252; other characters are replaced.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(title, content string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 72)
	pdf.SetTitle(title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 20, tr(title), "", "L", false)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(content, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		pdf.MultiCell(0, 14.4, tr(paragraph), "", "L", false)
		pdf.Ln(14.4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Extension() string   { return ".pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }
