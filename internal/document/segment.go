package document

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// headingRe matches a heading line: a run of '=', a title, and a closing run
// of '='. Balanced runs are enforced in Segment since RE2 has no backrefs.
var headingRe = regexp.MustCompile(`(?m)^(=+)[ \t]*([^=\n].*?)[ \t]*(=+)[ \t]*$`)

// excludedSections carry no instructional content.
var excludedSections = map[string]bool{
	"references":      true,
	"external links":  true,
	"see also":        true,
	"further reading": true,
	"notes":           true,
}

// IsExcluded reports whether a section title is filtered out by Segment.
func IsExcluded(title string) bool {
	return excludedSections[strings.ToLower(strings.TrimSpace(title))]
}

type heading struct {
	title      string
	start, end int
}

// Segment splits raw article text into ordered sections. Text before the
// first heading becomes the Introduction. Heading levels are not tracked;
// every heading opens a sibling section.
func Segment(raw string) *Sections {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	headings := findHeadings(text)

	s := newSections()

	introEnd := len(text)
	if len(headings) > 0 {
		introEnd = headings[0].start
	}
	s.set(IntroductionSection, strings.TrimSpace(text[:introEnd]))

	for i, h := range headings {
		bodyEnd := len(text)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1].start
		}
		if IsExcluded(h.title) {
			continue
		}
		name := h.title
		// The lead always owns the Introduction key.
		if strings.EqualFold(name, IntroductionSection) {
			name = HeadedIntroductionSection
		}
		s.set(name, strings.TrimSpace(text[h.end:bodyEnd]))
	}

	return s
}

func findHeadings(text string) []heading {
	var out []heading
	for _, m := range headingRe.FindAllStringSubmatchIndex(text, -1) {
		open := m[3] - m[2]
		closing := m[7] - m[6]
		if open != closing {
			continue
		}
		title := strings.TrimSpace(text[m[4]:m[5]])
		if title == "" {
			continue
		}
		out = append(out, heading{title: title, start: m[0], end: m[1]})
	}
	return out
}

// Render re-joins the sections into heading-delimited text. Segmenting the
// result yields the same names and bodies.
func (s *Sections) Render() string {
	var b strings.Builder
	s.Each(func(name, body string) {
		if name == IntroductionSection && b.Len() == 0 {
			b.WriteString(body)
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("== ")
		b.WriteString(name)
		b.WriteString(" ==\n")
		b.WriteString(body)
	})
	return b.String()
}

// MarshalJSON encodes the sections as a JSON object in section order.
func (s *Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.bodies[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
