package pdftext

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// scanContent walks a decoded page content stream and collects the strings
// shown by the text operators. Positioning operators become whitespace.
func scanContent(data []byte) string {
	var (
		out     strings.Builder
		pending []string
	)
	space := func() {
		if out.Len() == 0 {
			return
		}
		s := out.String()
		if last := s[len(s)-1]; last != ' ' && last != '\n' {
			out.WriteByte(' ')
		}
	}
	show := func() {
		for _, s := range pending {
			out.WriteString(s)
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isWhite(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, n := readLiteral(data[i:])
			pending = append(pending, decodeText(s))
			i += n
		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			s, n := readHex(data[i:])
			pending = append(pending, decodeText(s))
			i += n
		case c == '/':
			i++
			for i < len(data) && !isWhite(data[i]) && !isDelim(data[i]) {
				i++
			}
		case isDelim(c):
			i++
		default:
			start := i
			for i < len(data) && !isWhite(data[i]) && !isDelim(data[i]) {
				i++
			}
			if i == start {
				i++
				continue
			}
			tok := string(data[start:i])
			if isNumber(tok) {
				continue
			}
			switch tok {
			case "Tj", "TJ":
				show()
			case "'", `"`:
				out.WriteByte('\n')
				show()
			case "Td", "TD", "Tm", "ET":
				space()
			case "T*":
				out.WriteByte('\n')
			case "ID":
				// Inline image data runs until EI.
				if end := bytes.Index(data[i:], []byte("EI")); end >= 0 {
					i += end + 2
				} else {
					i = len(data)
				}
			}
			pending = pending[:0]
		}
	}

	return cleanText(out.String())
}

// readLiteral decodes a parenthesized string starting at data[0] and returns
// its bytes and the number of input bytes consumed.
func readLiteral(data []byte) ([]byte, int) {
	var out []byte
	depth := 0
	i := 0
	for ; i < len(data); i++ {
		c := data[i]
		switch c {
		case '(':
			depth++
			if depth == 1 {
				continue
			}
		case ')':
			depth--
			if depth == 0 {
				return out, i + 1
			}
		case '\\':
			if i+1 >= len(data) {
				continue
			}
			i++
			switch e := data[i]; e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
			continue
		}
		out = append(out, c)
	}
	return out, i
}

// readHex decodes a <...> hex string starting at data[0].
func readHex(data []byte) ([]byte, int) {
	var (
		out  []byte
		hi   = -1
		i    = 1
		done bool
	)
	for ; i < len(data) && !done; i++ {
		c := data[i]
		if c == '>' {
			done = true
			break
		}
		v := hexValue(c)
		if v < 0 {
			continue
		}
		if hi < 0 {
			hi = v
			continue
		}
		out = append(out, byte(hi<<4|v))
		hi = -1
	}
	if hi >= 0 {
		out = append(out, byte(hi<<4))
	}
	if done {
		i++
	}
	return out, i
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// decodeText converts string bytes to UTF-8: UTF-16BE when a byte order mark
// is present, Windows-1252 otherwise.
func decodeText(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		dec := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder()
		if s, err := dec.Bytes(b); err == nil {
			return string(s)
		}
	}
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// cleanText collapses runs of blanks, drops control characters and empty
// lines.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		var sb strings.Builder
		prevSpace := false
		for _, r := range line {
			switch {
			case unicode.IsSpace(r):
				if !prevSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
					prevSpace = true
				}
			case unicode.IsPrint(r):
				sb.WriteRune(r)
				prevSpace = false
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n")
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isNumber(tok string) bool {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			return false
		}
	}
	return true
}
