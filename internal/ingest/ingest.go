// Package ingest composes locator resolution, article retrieval and
// segmentation into a single document fetch.
package ingest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/locator"
	"github.com/abhisek/wikismart/internal/wiki"
)

// PageFetcher retrieves an article by exact title.
type PageFetcher interface {
	Fetch(ctx context.Context, lang language.Code, title string) (*wiki.Page, error)
}

// Service turns locators into segmented documents. Nothing is cached; each
// call fetches afresh.
type Service struct {
	fetcher PageFetcher
	logger  *zap.Logger
}

// New creates a Service.
func New(fetcher PageFetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// Fetch resolves raw, retrieves the article and segments it. The first
// failure is returned unchanged. Upload locators carry no remote content
// and are rejected.
func (s *Service) Fetch(ctx context.Context, raw string) (*document.Document, error) {
	loc, err := locator.Resolve(raw)
	if err != nil {
		return nil, err
	}
	if loc.Kind == locator.KindUpload {
		return nil, failure.InvalidLocator(raw)
	}

	page, err := s.fetcher.Fetch(ctx, loc.Language, loc.Title)
	if err != nil {
		s.logger.Debug("ingest failed",
			zap.String("locator", raw),
			zap.String("kind", string(failure.KindOf(err))))
		return nil, err
	}

	title := page.Title
	if title == "" {
		title = loc.Title
	}
	doc := document.New(title, loc.Language, document.Segment(page.Content))

	s.logger.Info("ingested article",
		zap.String("title", doc.Title),
		zap.String("lang", string(doc.Language)),
		zap.Int("sections", doc.Sections.Len()))
	return doc, nil
}

// FromText builds the pseudo document for extracted upload text. The whole
// text becomes the Introduction; no segmentation is applied.
func FromText(title string, lang language.Code, text string) *document.Document {
	return document.New(title, lang, document.Single(strings.TrimSpace(text)))
}
