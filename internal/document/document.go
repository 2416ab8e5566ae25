// Package document holds the ingested article model and the segmenter that
// splits raw article text into named sections.
package document

import "github.com/abhisek/wikismart/internal/language"

// IntroductionSection is the name of the section preceding the first heading.
const IntroductionSection = "Introduction"

// HeadedIntroductionSection names the body of a heading literally titled
// "Introduction", kept apart from the lead.
const HeadedIntroductionSection = "Introduction (section)"

// Document is an ingested article. It is immutable after construction.
type Document struct {
	Title    string        `json:"title"`
	Language language.Code `json:"language"`
	Sections *Sections     `json:"sections"`
}

// New builds a Document. A nil sections value is replaced by an empty
// mapping holding only the Introduction.
func New(title string, lang language.Code, sections *Sections) *Document {
	if sections == nil {
		sections = newSections()
		sections.set(IntroductionSection, "")
	}
	return &Document{Title: title, Language: lang, Sections: sections}
}

// Section returns the text of the named section.
func (d *Document) Section(name string) (string, bool) {
	return d.Sections.Get(name)
}

// Introduction returns the Introduction text, which is always present.
func (d *Document) Introduction() string {
	text, _ := d.Sections.Get(IntroductionSection)
	return text
}

// Sections is an ordered mapping of section name to text. Keys are unique
// and iteration follows first appearance in the source.
type Sections struct {
	names  []string
	bodies map[string]string
}

func newSections() *Sections {
	return &Sections{bodies: make(map[string]string)}
}

// Single returns sections holding only an Introduction with the given text.
func Single(intro string) *Sections {
	s := newSections()
	s.set(IntroductionSection, intro)
	return s
}

// set stores body under name. A repeated name keeps its first position and
// takes the new body.
func (s *Sections) set(name, body string) {
	if _, ok := s.bodies[name]; !ok {
		s.names = append(s.names, name)
	}
	s.bodies[name] = body
}

// Get returns the body of the named section.
func (s *Sections) Get(name string) (string, bool) {
	body, ok := s.bodies[name]
	return body, ok
}

// Names returns the section names in order.
func (s *Sections) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of sections.
func (s *Sections) Len() int {
	return len(s.names)
}

// Each calls fn for every section in order.
func (s *Sections) Each(fn func(name, body string)) {
	for _, n := range s.names {
		fn(n, s.bodies[n])
	}
}

// Entry is a single named section, used for serialization.
type Entry struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Entries returns the sections as an ordered slice.
func (s *Sections) Entries() []Entry {
	out := make([]Entry, 0, len(s.names))
	s.Each(func(name, body string) {
		out = append(out, Entry{Name: name, Text: body})
	})
	return out
}
