package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"pyrint/internal/source"
)

// Cursor walks the bytes of one file. Off is the next unread byte.
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("%s: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.src)
}

// At returns the byte k positions past Off, or 0 beyond the end.
func (c *Cursor) At(k int) byte {
	if i := int(c.Off) + k; i < len(c.src) {
		return c.src[i]
	}
	return 0
}

func (c *Cursor) Peek() byte {
	return c.At(0)
}

// Rest is the unread input.
func (c *Cursor) Rest() []byte {
	return c.src[c.Off:]
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	if len(rest) < len(s) {
		return false
	}
	return string(rest[:len(s)]) == s
}

// Skip advances n bytes, stopping at the end of input.
func (c *Cursor) Skip(n int) {
	c.Off = uint32(min(int(c.Off)+n, len(c.src))) // #nosec G115 -- bounded by len(src)
}

// Bump consumes one byte and returns it; 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	c.Skip(1)
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark is a saved offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
