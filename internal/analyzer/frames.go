package analyzer

import (
	"fmt"

	"fortio.org/safecast"

	"pyrint/internal/ast"
	"pyrint/internal/source"
)

// FrameKind enumerates the lexical scopes that get a frame.
type FrameKind uint8

const (
	FrameInvalid FrameKind = iota
	FrameModule
	FrameFunction
	FrameLambda
	FrameClass
)

func (k FrameKind) String() string {
	switch k {
	case FrameModule:
		return "module"
	case FrameFunction:
		return "function"
	case FrameLambda:
		return "lambda"
	case FrameClass:
		return "class"
	default:
		return "invalid"
	}
}

// FrameID indexes the frame arena. Zero is reserved.
type FrameID uint32

const NoFrameID FrameID = 0

func (id FrameID) IsValid() bool { return id != NoFrameID }

// Frame is one lexical scope. Parent is a back-reference only; frames never
// own their children. Maps are allocated on first write.
type Frame struct {
	Kind   FrameKind
	Parent FrameID
	Owner  ast.StmtID // the def or class; NoStmtID for modules and lambdas
	Span   source.Span

	Bound     map[source.StringID]struct{}
	Globals   map[source.StringID]source.Span
	Nonlocals map[source.StringID]source.Span
	// Funcs holds the first definition of each function name.
	Funcs map[source.StringID]source.Span
	// Uses holds the first use of each name not yet declared global.
	Uses map[source.StringID]source.Span

	conflicts map[source.StringID]struct{}
}

func (f *Frame) bind(name source.StringID) {
	if f.Bound == nil {
		f.Bound = make(map[source.StringID]struct{})
	}
	f.Bound[name] = struct{}{}
}

func (f *Frame) IsBound(name source.StringID) bool {
	_, ok := f.Bound[name]
	return ok
}

func (f *Frame) IsGlobal(name source.StringID) bool {
	_, ok := f.Globals[name]
	return ok
}

func (f *Frame) IsNonlocal(name source.StringID) bool {
	_, ok := f.Nonlocals[name]
	return ok
}

func (f *Frame) declareGlobal(name source.StringID, sp source.Span) {
	if f.Globals == nil {
		f.Globals = make(map[source.StringID]source.Span)
	}
	if _, ok := f.Globals[name]; !ok {
		f.Globals[name] = sp
	}
}

func (f *Frame) declareNonlocal(name source.StringID, sp source.Span) {
	if f.Nonlocals == nil {
		f.Nonlocals = make(map[source.StringID]source.Span)
	}
	if _, ok := f.Nonlocals[name]; !ok {
		f.Nonlocals[name] = sp
	}
}

// recordUse keeps the earliest use of name.
func (f *Frame) recordUse(name source.StringID, sp source.Span) {
	if f.Uses == nil {
		f.Uses = make(map[source.StringID]source.Span)
	}
	if _, ok := f.Uses[name]; !ok {
		f.Uses[name] = sp
	}
}

// markConflict returns false if name was already reported for this frame.
func (f *Frame) markConflict(name source.StringID) bool {
	if _, done := f.conflicts[name]; done {
		return false
	}
	if f.conflicts == nil {
		f.conflicts = make(map[source.StringID]struct{})
	}
	f.conflicts[name] = struct{}{}
	return true
}

// Frames stores every frame of one walk in a slice-backed arena.
type Frames struct {
	data []Frame
}

func NewFrames(capacity uint32) *Frames {
	if capacity == 0 {
		capacity = 16
	}
	return &Frames{data: make([]Frame, 1, capacity+1)} // index 0 reserved for NoFrameID
}

func (fs *Frames) New(kind FrameKind, parent FrameID, owner ast.StmtID, span source.Span) FrameID {
	value, err := safecast.Conv[uint32](len(fs.data))
	if err != nil {
		panic(fmt.Errorf("frames arena overflow: %w", err))
	}
	fs.data = append(fs.data, Frame{Kind: kind, Parent: parent, Owner: owner, Span: span})
	return FrameID(value)
}

// Get returns nil for an invalid id. The pointer is invalidated by New.
func (fs *Frames) Get(id FrameID) *Frame {
	if !id.IsValid() || int(id) >= len(fs.data) {
		return nil
	}
	return &fs.data[id]
}

// Len reports the number of frames excluding the sentinel.
func (fs *Frames) Len() int { return len(fs.data) - 1 }
