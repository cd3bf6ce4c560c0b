// ABOUTME: Bounded, terminal- and JSON-safe previews of arbitrary bytes.
// ABOUTME: Valid UTF-8 yields the first line; anything else is escaped.

package listing

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// PreviewWindow is how many leading bytes of an object are read.
	PreviewWindow = 512
	// EscapedBytes is how many leading bytes an escaped preview shows.
	EscapedBytes = 32
)

// Preview renders head, the first bytes of an object. truncated says the
// object continues past head, in which case a rune cut in half at the
// end of the window is not held against the content. The second result
// reports whether the escaped form was used.
func Preview(head []byte, truncated bool) (string, bool) {
	text := head
	if truncated {
		text = trimPartialRune(text)
	}
	if utf8.Valid(text) {
		line, _, _ := bytes.Cut(text, []byte("\n"))
		return strings.TrimSuffix(string(line), "\r"), false
	}
	return Escape(head[:min(len(head), EscapedBytes)]), true
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}

// Escape renders b as printable ASCII, using \xHH for anything else.
func Escape(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
