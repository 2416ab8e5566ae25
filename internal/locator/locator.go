// Package locator turns source locators into a language code and an
// article title. Resolution is pure string work; nothing is fetched.
package locator

import (
	"net/url"
	"strings"

	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/language"
)

// UploadPrefix marks PDF-derived pseudo documents, e.g. "uploaded:notes.pdf".
const UploadPrefix = "uploaded:"

// Kind distinguishes remote articles from uploaded documents.
type Kind int

const (
	KindRemote Kind = iota
	KindUpload
)

// Locator is a resolved source reference.
type Locator struct {
	Raw      string
	Kind     Kind
	Language language.Code

	// Title is the natural-language article title (remote only).
	Title string

	// Filename is the uploaded file name (upload only).
	Filename string
}

// Upload builds the sentinel locator string for an uploaded file.
func Upload(filename string) string {
	return UploadPrefix + filename
}

// Resolve parses raw into a Locator. It fails with an InvalidLocator error
// only when no usable identifier can be derived.
func Resolve(raw string) (Locator, error) {
	raw = strings.TrimSpace(raw)

	if name, ok := strings.CutPrefix(raw, UploadPrefix); ok {
		if strings.TrimSpace(name) == "" {
			return Locator{}, failure.InvalidLocator(raw)
		}
		return Locator{Raw: raw, Kind: KindUpload, Language: language.Default, Filename: name}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Locator{}, failure.InvalidLocator(raw)
	}

	title := identifier(u.Path)
	if title == "" {
		return Locator{}, failure.InvalidLocator(raw)
	}

	return Locator{
		Raw:      raw,
		Kind:     KindRemote,
		Language: hostLanguage(u.Hostname()),
		Title:    title,
	}, nil
}

// identifier returns the last path segment, skipping one trailing empty
// segment left by a trailing slash. Underscores become spaces.
func identifier(path string) string {
	parts := strings.Split(path, "/")
	last := parts[len(parts)-1]
	if last == "" && len(parts) > 1 {
		last = parts[len(parts)-2]
	}
	return strings.TrimSpace(strings.ReplaceAll(last, "_", " "))
}

// hostLanguage reads the language subdomain of host. A host without a
// subdomain label in front of its registrable name (e.g. "example.org")
// carries no language and yields the default.
func hostLanguage(host string) language.Code {
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return language.Default
	}
	first := strings.ToLower(labels[0])
	if first == "" || first == "www" {
		return language.Default
	}
	return language.Code(first)
}
