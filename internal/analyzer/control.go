package analyzer

import (
	"fmt"

	"pyrint/internal/ast"
	"pyrint/internal/source"
)

type markerKind uint8

const (
	markNone markerKind = iota
	markLoop
	markFunction
	markClass
	markExcept
)

// marker is one entry of the control stack. It is independent of frames:
// loops and except handlers push markers but no frame.
type marker struct {
	kind markerKind
	fn   *funcContext // set for markFunction
}

// funcContext collects what the body walk of one def or lambda learns.
type funcContext struct {
	name        source.StringID
	span        source.Span
	async       bool
	lambda      bool
	constructor bool
	generator   bool
	// returns are the value-carrying return statements of the direct body.
	returns []source.Span
}

func (c *checker) pushControl(m marker) {
	c.control = append(c.control, m)
}

func (c *checker) popControl(kind markerKind) {
	n := len(c.control)
	if n == 0 || c.control[n-1].kind != kind {
		panic(fmt.Sprintf("analyzer: control stack mismatch, want %d", kind))
	}
	c.control = c.control[:n-1]
}

// inLoop reports whether a loop encloses the current statement before any
// function or class boundary.
func (c *checker) inLoop() bool {
	for i := len(c.control) - 1; i >= 0; i-- {
		switch c.control[i].kind {
		case markLoop:
			return true
		case markFunction, markClass:
			return false
		}
	}
	return false
}

// enclosingFunction is the nearest function context; a class body blocks the search.
func (c *checker) enclosingFunction() *funcContext {
	for i := len(c.control) - 1; i >= 0; i-- {
		switch c.control[i].kind {
		case markFunction:
			return c.control[i].fn
		case markClass:
			return nil
		}
	}
	return nil
}

func (c *checker) inExcept() bool {
	for i := len(c.control) - 1; i >= 0; i-- {
		switch c.control[i].kind {
		case markExcept:
			return true
		case markFunction, markClass:
			return false
		}
	}
	return false
}

// withControl runs body with m pushed.
func (c *checker) withControl(m marker, body func()) {
	c.pushControl(m)
	defer c.popControl(m.kind)
	body()
}

// scoped enters a new frame, pushes m unless it is empty, runs body and
// unwinds both in reverse order on every exit path.
func (c *checker) scoped(kind FrameKind, owner ast.StmtID, span source.Span, m marker, body func()) {
	id := c.enterFrame(kind, owner, span)
	defer c.leaveFrame(id)
	if m.kind != markNone {
		c.pushControl(m)
		defer c.popControl(m.kind)
	}
	body()
}

func (c *checker) enterFrame(kind FrameKind, owner ast.StmtID, span source.Span) FrameID {
	id := c.frames.New(kind, c.currentFrameID(), owner, span)
	c.stack = append(c.stack, id)
	return id
}

func (c *checker) leaveFrame(expected FrameID) {
	n := len(c.stack)
	if n == 0 || c.stack[n-1] != expected {
		panic(fmt.Sprintf("analyzer: frame stack mismatch, want %d", expected))
	}
	c.stack = c.stack[:n-1]
	if c.track.uses {
		c.propagateUses(expected)
	}
}

func (c *checker) currentFrameID() FrameID {
	if len(c.stack) == 0 {
		return NoFrameID
	}
	return c.stack[len(c.stack)-1]
}

// frame returns the current frame. Do not keep the pointer across a walk
// that may enter new frames.
func (c *checker) frame() *Frame {
	return c.frames.Get(c.currentFrameID())
}
