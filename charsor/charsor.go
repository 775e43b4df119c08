// Package charsor provides a UTF-8 aware scanning cursor over a string, the
// building block for small hand-written lexers.
//
// Offsets are byte positions into the input. Invalid UTF-8 is returned as
// utf8.RuneError one byte at a time, so the cursor always makes progress.
package charsor

import "unicode/utf8"

// Cursor walks a string rune by rune. The zero value is a cursor over "".
type Cursor struct {
	input  string
	offset int
}

func New(input string) *Cursor {
	return &Cursor{input: input}
}

// Peek returns the next rune without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.offset >= len(c.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.offset:])
	return r, true
}

// Next consumes and returns the next rune.
func (c *Cursor) Next() (rune, bool) {
	if c.offset >= len(c.input) {
		return 0, false
	}
	r, width := utf8.DecodeRuneInString(c.input[c.offset:])
	c.offset += width
	return r, true
}

// Prev returns the rune just before the cursor. The cursor does not move.
func (c *Cursor) Prev() (rune, bool) {
	if c.offset == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(c.input[:c.offset])
	return r, true
}

// EatWhile consumes runes while fn returns true and reports how many runes
// it skipped.
func (c *Cursor) EatWhile(fn func(rune) bool) int {
	n := 0
	for c.offset < len(c.input) {
		r, width := utf8.DecodeRuneInString(c.input[c.offset:])
		if !fn(r) {
			break
		}
		c.offset += width
		n++
	}
	return n
}

// Offset returns the byte position of the next rune, or len(input) at the
// end of the input.
func (c *Cursor) Offset() int { return c.offset }

// PrevOffset returns the byte position of the rune before the cursor, or 0
// at the start of the input.
func (c *Cursor) PrevOffset() int {
	if c.offset == 0 {
		return 0
	}
	_, width := utf8.DecodeLastRuneInString(c.input[:c.offset])
	return c.offset - width
}

// Slice returns input[start:end]. It panics when the range is out of bounds,
// like any string slice expression.
func (c *Cursor) Slice(start, end int) string {
	return c.input[start:end]
}

// Rest returns the unconsumed part of the input.
func (c *Cursor) Rest() string { return c.input[c.offset:] }

// Done reports whether the whole input has been consumed.
func (c *Cursor) Done() bool { return c.offset >= len(c.input) }
