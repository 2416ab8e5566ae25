// Package language maps short language codes to the natural-language names
// used when instructing generation providers.
package language

import "strings"

// Code is a short language token such as "en" or "fr".
type Code string

// Default is used when a locator carries no language.
const Default Code = "en"

// names is the fixed table of codes the prompts know by name.
var names = map[Code]string{
	"en": "English",
	"fr": "French",
	"ar": "Arabic",
	"es": "Spanish",
}

// Name returns the display name for c. Unknown codes are returned verbatim
// so that providers still receive a best-effort language instruction.
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

// Known reports whether c is in the fixed table.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// Parse normalizes s into a Code; empty input yields Default.
func Parse(s string) Code {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default
	}
	return Code(s)
}
