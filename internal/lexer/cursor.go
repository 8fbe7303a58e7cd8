package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"analex/internal/source"
)

// Cursor is a scan position restricted to one line of a file.
type Cursor struct {
	File *source.File
	Off  uint32
	// Start is the first byte of the current line; it acts as a word boundary.
	Start uint32
	// Limit is the exclusive end of the current line.
	Limit uint32
}

// NewCursor creates a cursor over the given line.
func NewCursor(f *source.File, line source.Span) Cursor {
	return Cursor{File: f, Off: line.Start, Start: line.Start, Limit: line.End}
}

// EOF reports whether the end of the line was reached.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Rest returns the unread bytes of the line.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// Peek decodes the current rune; size is 0 at end of line.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(c.Rest())
}

// PeekAt decodes the rune n bytes ahead of the cursor.
func (c *Cursor) PeekAt(n uint32) (r rune, size int) {
	if c.Off+n >= c.Limit {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off+n : c.Limit])
}

// Prev decodes the rune just before the cursor; ok is false at line start.
func (c *Cursor) Prev() (r rune, ok bool) {
	if c.Off <= c.Start {
		return utf8.RuneError, false
	}
	r, _ = utf8.DecodeLastRune(c.File.Content[c.Start:c.Off])
	return r, true
}

// Bump advances by one rune (never by zero bytes while not at EOF).
func (c *Cursor) Bump() {
	_, sz := c.Peek()
	if sz == 0 {
		return
	}
	c.Advance(size32(sz))
}

// Advance moves the cursor n bytes forward, clamped to the line.
func (c *Cursor) Advance(n uint32) {
	c.Off += n
	if c.Off > c.Limit {
		c.Off = c.Limit
	}
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

func size32(n int) uint32 {
	u, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("size overflow: %w", err))
	}
	return u
}
