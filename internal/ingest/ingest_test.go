package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/wiki"
)

type fetchCall struct {
	lang  language.Code
	title string
}

type stubFetcher struct {
	page  *wiki.Page
	err   error
	calls []fetchCall
}

func (f *stubFetcher) Fetch(_ context.Context, lang language.Code, title string) (*wiki.Page, error) {
	f.calls = append(f.calls, fetchCall{lang, title})
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func TestFetch_ResolvesFetchesAndSegments(t *testing.T) {
	f := &stubFetcher{page: &wiki.Page{
		Title:   "Intelligence artificielle",
		Content: "Intro FR.\n\n== Histoire ==\nDébut.\n\n== Références ==\nx\n\n== Notes ==\ny",
	}}
	svc := New(f, nil)

	doc, err := svc.Fetch(context.Background(), "https://fr.wikipedia.org/wiki/Intelligence_artificielle")
	require.NoError(t, err)

	require.Len(t, f.calls, 1)
	assert.Equal(t, fetchCall{"fr", "Intelligence artificielle"}, f.calls[0])

	assert.Equal(t, "Intelligence artificielle", doc.Title)
	assert.Equal(t, language.Code("fr"), doc.Language)
	assert.Equal(t, []string{document.IntroductionSection, "Histoire", "Références"}, doc.Sections.Names())
	assert.Equal(t, "Intro FR.", doc.Introduction())
}

func TestFetch_InvalidLocatorSkipsFetch(t *testing.T) {
	f := &stubFetcher{}
	svc := New(f, nil)

	_, err := svc.Fetch(context.Background(), "https://en.wikipedia.org/")
	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidLocator, failure.KindOf(err))
	assert.Empty(t, f.calls)
}

func TestFetch_UploadLocatorRejected(t *testing.T) {
	f := &stubFetcher{}
	svc := New(f, nil)

	_, err := svc.Fetch(context.Background(), "uploaded:notes.pdf")
	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidLocator, failure.KindOf(err))
	assert.Empty(t, f.calls)
}

func TestFetch_PropagatesFetchFailureUnchanged(t *testing.T) {
	want := failure.AmbiguousSource([]string{"Mercury (planet)", "Mercury (element)"})
	f := &stubFetcher{err: want}
	svc := New(f, nil)

	_, err := svc.Fetch(context.Background(), "https://en.wikipedia.org/wiki/Mercury")
	require.Error(t, err)
	assert.Same(t, want, err)
	assert.Len(t, f.calls, 1, "no retries")
}

func TestFetch_NotFound(t *testing.T) {
	f := &stubFetcher{err: failure.SourceNotFound("Nonexistent page xyz")}
	svc := New(f, nil)

	_, err := svc.Fetch(context.Background(), "https://en.wikipedia.org/wiki/Nonexistent_page_xyz")
	require.Error(t, err)

	var fe *failure.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, failure.KindSourceNotFound, fe.Kind)
}

func TestFromText(t *testing.T) {
	doc := FromText("notes.pdf", "en", "  page one\n\npage two  ")
	assert.Equal(t, "notes.pdf", doc.Title)
	assert.Equal(t, []string{document.IntroductionSection}, doc.Sections.Names())
	assert.Equal(t, "page one\n\npage two", doc.Introduction())
}
