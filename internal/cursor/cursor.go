// Package cursor provides a positional character reader over a format
// string, with primitive match operations used by the tokenizer.
//
// Every Read* operation either consumes the matched text and returns true,
// or returns false leaving the position untouched.  Positions and lengths
// are byte offsets into the original string; consumption is always by whole
// runes so multi-byte symbols such as € survive intact.
package cursor

import (
	"strings"
	"unicode/utf8"
)

// EOF is the sentinel returned by [Cursor.Peek] at end of input.
const EOF rune = -1

// Cursor reads a format string left to right.
type Cursor struct {
	src string
	pos int
}

// New creates a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total byte length of the input.
func (c *Cursor) Len() int { return len(c.src) }

// Substring returns length bytes of the input starting at byte offset start.
// The bounds are clamped to the input.
func (c *Cursor) Substring(start, length int) string {
	if start < 0 {
		start = 0
	}
	if start > len(c.src) {
		start = len(c.src)
	}
	end := start + length
	if end > len(c.src) {
		end = len(c.src)
	}
	return c.src[start:end]
}

// Peek returns the rune at the current position without consuming it, or
// [EOF] at end of input.
func (c *Cursor) Peek() rune {
	if c.pos >= len(c.src) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

// Advance moves the position forward by n runes, clamped to the end of the
// input.
func (c *Cursor) Advance(n int) {
	for ; n > 0 && c.pos < len(c.src); n-- {
		_, size := utf8.DecodeRuneInString(c.src[c.pos:])
		c.pos += size
	}
}

// ReadOneOf consumes the current rune if it is a member of set.
func (c *Cursor) ReadOneOf(set string) bool {
	r := c.Peek()
	if r == EOF || !strings.ContainsRune(set, r) {
		return false
	}
	c.pos += utf8.RuneLen(r)
	return true
}

// ReadString consumes literal if the upcoming text matches it.  With
// caseInsensitive set the comparison uses ASCII-insensitive folding; the
// consumed length is always len(literal) bytes, so case-insensitive literals
// must be ASCII.
func (c *Cursor) ReadString(literal string, caseInsensitive bool) bool {
	if literal == "" || c.pos+len(literal) > len(c.src) {
		return false
	}
	ahead := c.src[c.pos : c.pos+len(literal)]
	if caseInsensitive {
		if !strings.EqualFold(ahead, literal) {
			return false
		}
	} else if ahead != literal {
		return false
	}
	c.pos += len(literal)
	return true
}

// ReadOneOrMore consumes one or more consecutive occurrences of ch
// (case-sensitive).  It fails without moving if the current rune is not ch.
func (c *Cursor) ReadOneOrMore(ch rune) bool {
	if c.Peek() != ch {
		return false
	}
	size := utf8.RuneLen(ch)
	for c.Peek() == ch {
		c.pos += size
	}
	return true
}

// ReadEnclosed consumes an open rune, everything up to the next close rune,
// and the close rune itself.  Nesting is not supported: the first close wins.
// It fails without moving when the current rune is not open or no close
// follows before end of input.
func (c *Cursor) ReadEnclosed(open, close rune) bool {
	if c.Peek() != open {
		return false
	}
	openLen := utf8.RuneLen(open)
	rel := strings.IndexRune(c.src[c.pos+openLen:], close)
	if rel < 0 {
		return false
	}
	c.pos += openLen + rel + utf8.RuneLen(close)
	return true
}
