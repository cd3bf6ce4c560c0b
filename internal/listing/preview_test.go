// ABOUTME: Tests for preview rendering.
// ABOUTME: Covers first-line extraction, escaping and window boundaries.

package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewFirstLine(t *testing.T) {
	got, binary := Preview([]byte("hello\nworld"), false)
	assert.Equal(t, "hello", got)
	assert.False(t, binary)
}

func TestPreviewStripsCarriageReturn(t *testing.T) {
	got, _ := Preview([]byte("windows\r\nline"), false)
	assert.Equal(t, "windows", got)
}

func TestPreviewInvalidUTF8(t *testing.T) {
	got, binary := Preview([]byte{0xff, 0xfe}, false)
	assert.True(t, binary)
	assert.Contains(t, got, `\xff`)
	assert.Contains(t, got, `\xfe`)
}

func TestPreviewEscapesBoundedPrefix(t *testing.T) {
	head := append([]byte{0xff}, []byte(strings.Repeat("a", 100))...)
	got, binary := Preview(head, false)
	assert.True(t, binary)
	assert.Equal(t, `\xff`+strings.Repeat("a", EscapedBytes-1), got)
}

func TestPreviewToleratesRuneCutByWindow(t *testing.T) {
	// "é" is 0xc3 0xa9; the window ends between the two bytes.
	head := []byte("caf\xc3")
	got, binary := Preview(head, true)
	assert.False(t, binary)
	assert.Equal(t, "caf", got)

	// The same bytes at the real end of the content are malformed.
	_, binary = Preview(head, false)
	assert.True(t, binary)
}

func TestPreviewEmpty(t *testing.T) {
	got, binary := Preview(nil, false)
	assert.Equal(t, "", got)
	assert.False(t, binary)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b\n\t\x00\x1b`, Escape([]byte("a\\b\n\t\x00\x1b")))
}
