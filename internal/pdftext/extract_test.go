package pdftext

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wikismart/internal/failure"
)

// buildPDF renders one page per entry. Compression is off so the content
// streams stay readable when a test fails.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		pdf.AddPage()
		if text != "" {
			pdf.Cell(40, 10, text)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func assertNoStagedFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged upload left behind")
}

func TestExtract_JoinsPagesWithBlankLine(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	text, err := e.Extract(context.Background(), buildPDF(t, "Hello World from page one", "Second page text"))
	require.NoError(t, err)

	parts := strings.Split(text, "\n\n")
	require.Len(t, parts, 2, "text: %q", text)
	assert.Contains(t, parts[0], "Hello World from page one")
	assert.Contains(t, parts[1], "Second page text")

	assertNoStagedFiles(t, dir)
}

func TestExtract_CorruptInput(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	_, err := e.Extract(context.Background(), []byte("definitely not a pdf"))
	require.Error(t, err)
	assert.Equal(t, failure.KindEmptyExtractedText, failure.KindOf(err))

	assertNoStagedFiles(t, dir)
}

func TestExtract_NoText(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	_, err := e.Extract(context.Background(), buildPDF(t, ""))
	require.Error(t, err)
	assert.Equal(t, failure.KindEmptyExtractedText, failure.KindOf(err))

	assertNoStagedFiles(t, dir)
}

func TestExtract_Canceled(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, buildPDF(t, "Hello"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, failure.KindEmptyExtractedText, failure.KindOf(err))

	assertNoStagedFiles(t, dir)
}

func TestExtract_StagingFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	e := New(missing, nil)

	_, err := e.Extract(context.Background(), buildPDF(t, "Hello"))
	require.Error(t, err)
	assert.Equal(t, failure.KindEmptyExtractedText, failure.KindOf(err))
	assert.Contains(t, err.Error(), "staging upload")
}

func TestScanContent(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single line Tj",
			stream: "BT 31.19 794.57 Td (Hello World) Tj ET",
			want:   "Hello World",
		},
		{
			name:   "multi line Tj",
			stream: "BT\n/F1 12 Tf\n72 720 Td\n(Hello) Tj\nET",
			want:   "Hello",
		},
		{
			name:   "TJ array with kerning",
			stream: "BT [(Wik) -20 (iSmart)] TJ ET",
			want:   "WikiSmart",
		},
		{
			name:   "next line operators",
			stream: "BT (first) Tj T* (second) Tj (third) ' ET",
			want:   "first\nsecond\nthird",
		},
		{
			name:   "escapes",
			stream: `BT (a \(b\) c\\d \101) Tj ET`,
			want:   `a (b) c\d A`,
		},
		{
			name:   "nested parentheses",
			stream: "BT (f(x) = y) Tj ET",
			want:   "f(x) = y",
		},
		{
			name:   "utf16 hex string",
			stream: "BT <FEFF00E9007400E9> Tj ET",
			want:   "été",
		},
		{
			name:   "winansi bytes",
			stream: "BT (caf\\351) Tj ET",
			want:   "café",
		},
		{
			name:   "separate text objects",
			stream: "BT (one) Tj ET BT (two) Tj ET",
			want:   "one two",
		},
		{
			name:   "strings outside text operators ignored",
			stream: "/Span << /ActualText (hidden) >> BDC BT (shown) Tj ET EMC",
			want:   "shown",
		},
		{
			name:   "inline image skipped",
			stream: "BI /W 1 /H 1 ID \x00(\xff) EI BT (after) Tj ET",
			want:   "after",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanContent([]byte(tt.stream)))
		})
	}
}
