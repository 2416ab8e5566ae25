package generation

import (
	"regexp"
	"strings"
)

// thinkingBlockRe matches reasoning blocks some models emit before the
// answer. RE2 has no backreferences, so each tag is listed.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<think>.*?</think>|<thinking>.*?</thinking>|<reasoning>.*?</reasoning>`,
)

// preamblePatterns match a leading announcement of the output. Each requires
// a trailing colon so ordinary first sentences are left alone.
var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.!]?\s+`),
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the| a| your)?(?: concise| structured| requested)? (?:summary|translation|translated text|text)(?: in [\p{L} ]+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:summary|translation|translated text)(?: in [\p{L} ]+)?\s*:`),
	regexp.MustCompile(`(?i)^voici (?:le |la |un |une )?(?:résumé|traduction)[^:\n]*:`),
	regexp.MustCompile(`(?i)^aquí (?:está|tienes) (?:el |la )?(?:resumen|traducción)[^:\n]*:`),
}

// cleanText strips model artifacts from free-text output: reasoning blocks,
// announcement preambles, and quotes wrapping the whole text.
func cleanText(text string) string {
	text = strings.TrimSpace(thinkingBlockRe.ReplaceAllString(text, ""))

	// A "Sure," prefix only counts when an announcement follows it.
	if loc := preamblePatterns[0].FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		for _, re := range preamblePatterns[1:] {
			if re.MatchString(rest) {
				text = rest
				break
			}
		}
	}
	for _, re := range preamblePatterns[1:] {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
			break
		}
	}

	return strings.TrimSpace(unwrapQuotes(text))
}

var quotePairs = map[rune]rune{
	'\u0022': '\u0022', // "
	'\u0027': '\u0027', // '
	'\u00ab': '\u00bb', // « »
	'\u201c': '\u201d', // curly double quotes
}

func unwrapQuotes(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	closing, ok := quotePairs[runes[0]]
	if !ok || runes[len(runes)-1] != closing {
		return text
	}
	inner := string(runes[1 : len(runes)-1])
	// Leave text alone when the quotes belong to separate quotations.
	if strings.ContainsRune(inner, runes[0]) {
		return text
	}
	return strings.TrimSpace(inner)
}
