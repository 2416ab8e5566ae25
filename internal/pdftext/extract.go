// Package pdftext extracts plain text from uploaded PDF documents.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/failure"
)

const tempPattern = "wikismart-upload-*.pdf"

var disableConfigDir sync.Once

// Extractor turns PDF bytes into text. Each call works on its own temp file.
type Extractor struct {
	// TempDir is where upload files are staged. Empty means os.TempDir().
	TempDir string

	logger *zap.Logger
}

// New creates an Extractor.
func New(tempDir string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	disableConfigDir.Do(api.DisableConfigDir)
	return &Extractor{TempDir: tempDir, logger: logger}
}

// Extract returns the text of every page joined by a blank line. The staged
// temp file is removed on every return path. Every failure, including
// cancellation and staging errors, is an EmptyExtractedText carrying the
// cause.
func (e *Extractor) Extract(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", failure.EmptyExtractedText(err)
	}

	f, err := os.CreateTemp(e.TempDir, tempPattern)
	if err != nil {
		return "", failure.EmptyExtractedText(fmt.Errorf("staging upload: %w", err))
	}
	path := f.Name()
	defer func() {
		f.Close()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("removing staged upload", zap.String("path", path), zap.Error(err))
		}
	}()

	if _, err := f.Write(content); err != nil {
		return "", failure.EmptyExtractedText(fmt.Errorf("staging upload: %w", err))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", failure.EmptyExtractedText(fmt.Errorf("staging upload: %w", err))
	}

	pages, err := e.readPages(ctx, f)
	if err != nil {
		return "", err
	}

	text := strings.Join(pages, "\n\n")
	if strings.TrimSpace(text) == "" {
		return "", failure.EmptyExtractedText(nil)
	}

	e.logger.Debug("extracted pdf text",
		zap.Int("pages", len(pages)),
		zap.Int("chars", len([]rune(text))))
	return text, nil
}

func (e *Extractor) readPages(ctx context.Context, rs io.ReadSeeker) ([]string, error) {
	pdf, err := api.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, failure.EmptyExtractedText(fmt.Errorf("pdfcpu read: %w", err))
	}

	pages := make([]string, 0, pdf.PageCount)
	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, failure.EmptyExtractedText(err)
		}
		pages = append(pages, pageText(pdf, pageNr))
	}
	return pages, nil
}

// pageText returns the text shown on one page, or "" when the page has no
// readable content stream.
func pageText(pdf *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdf, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return scanContent(data)
}
