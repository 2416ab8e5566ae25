package learn

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/ingest"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/locator"
)

// Upload is a file submitted by a learner.
type Upload struct {
	Filename string
	Content  []byte
}

// UploadResult is the outcome of an upload operation. Exactly one of
// Summary, Translation and Quiz is set. TextLength counts the characters
// extracted before truncation.
type UploadResult struct {
	Filename    string                    `json:"filename"`
	Summary     string                    `json:"summary,omitempty"`
	Translation string                    `json:"translation,omitempty"`
	Quiz        []generation.QuizQuestion `json:"quiz,omitempty"`
	QuizID      string                    `json:"quiz_id,omitempty"`
	ArticleID   string                    `json:"article_id,omitempty"`
	TextLength  int                       `json:"text_length"`
}

// SummarizePDF summarizes an uploaded PDF in lang.
func (s *Service) SummarizePDF(ctx context.Context, up Upload, lang language.Code) (*UploadResult, error) {
	doc, length, err := s.readUpload(ctx, up, lang)
	if err != nil {
		return nil, err
	}
	summary, err := s.opts.Generator.Summarize(ctx, doc.Introduction(), doc.Language)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Filename:   up.Filename,
		Summary:    summary,
		ArticleID:  s.record(ctx, doc, locator.Upload(up.Filename), ActionPDFSummary),
		TextLength: length,
	}, nil
}

// TranslatePDF translates an uploaded PDF into target, a language name.
func (s *Service) TranslatePDF(ctx context.Context, up Upload, target string) (*UploadResult, error) {
	doc, length, err := s.readUpload(ctx, up, language.Default)
	if err != nil {
		return nil, err
	}
	translation, err := s.opts.Generator.Translate(ctx, doc.Introduction(), s.cfg.target(target))
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Filename:    up.Filename,
		Translation: translation,
		ArticleID:   s.record(ctx, doc, locator.Upload(up.Filename), ActionPDFTranslation),
		TextLength:  length,
	}, nil
}

// QuizPDF generates and stores a quiz on an uploaded PDF in lang.
func (s *Service) QuizPDF(ctx context.Context, up Upload, lang language.Code) (*UploadResult, error) {
	doc, length, err := s.readUpload(ctx, up, lang)
	if err != nil {
		return nil, err
	}
	questions, err := s.opts.Generator.GenerateQuiz(ctx, doc.Introduction(), doc.Language)
	if err != nil {
		return nil, err
	}
	source := locator.Upload(up.Filename)
	id, err := s.saveQuiz(ctx, source, string(doc.Language), questions)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Filename:   up.Filename,
		Quiz:       questions,
		QuizID:     id,
		ArticleID:  s.record(ctx, doc, source, ActionPDFQuiz),
		TextLength: length,
	}, nil
}

// readUpload checks the file name, extracts the text and wraps the first
// MaxUploadChars characters in a pseudo document.
func (s *Service) readUpload(ctx context.Context, up Upload, lang language.Code) (*document.Document, int, error) {
	if !strings.HasSuffix(strings.ToLower(up.Filename), ".pdf") {
		return nil, 0, failure.UnsupportedUpload(up.Filename)
	}

	text, err := s.opts.Extractor.Extract(ctx, up.Content)
	if err != nil {
		return nil, 0, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, 0, failure.EmptyExtractedText(nil)
	}

	length := utf8.RuneCountInString(text)
	if s.cfg.MaxUploadChars > 0 && length > s.cfg.MaxUploadChars {
		text = truncateRunes(text, s.cfg.MaxUploadChars)
		s.logger.Debug("truncated upload text",
			zap.String("filename", up.Filename),
			zap.Int("chars", length),
			zap.Int("kept", s.cfg.MaxUploadChars))
	}

	if lang == "" {
		lang = language.Default
	}
	return ingest.FromText(up.Filename, lang, text), length, nil
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
