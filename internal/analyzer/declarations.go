package analyzer

import (
	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/source"
)

// bind records an assignment-like binding of name in the current frame. A
// binding is also a use for the prior-global-declaration check.
func (c *checker) bind(name source.StringID, sp source.Span) {
	f := c.frame()
	if c.track.bindings {
		f.bind(name)
	}
	if c.track.uses {
		c.use(name, sp)
	}
}

// bindParam records a parameter. Parameters are bindings but never uses.
func (c *checker) bindParam(name source.StringID) {
	if c.track.bindings {
		c.frame().bind(name)
	}
}

// use records the first reference to name in a function or class frame
// that has not declared it global or nonlocal yet.
func (c *checker) use(name source.StringID, sp source.Span) {
	if !c.track.uses {
		return
	}
	f := c.frame()
	if f.Kind == FrameModule || f.IsGlobal(name) || f.IsNonlocal(name) {
		return
	}
	f.recordUse(name, sp)
}

// propagateUses hands the free uses of a finished frame to its parent, so
// that a nested function reading x counts as a use of x before the
// parent's 'global x'.
func (c *checker) propagateUses(id FrameID) {
	child := c.frames.Get(id)
	if child == nil || len(child.Uses) == 0 {
		return
	}
	parent := c.frames.Get(child.Parent)
	if parent == nil || parent.Kind == FrameModule {
		return
	}
	for name, sp := range child.Uses {
		if child.IsBound(name) || parent.IsGlobal(name) || parent.IsNonlocal(name) {
			continue
		}
		parent.recordUse(name, sp)
	}
}

func (c *checker) declareGlobals(names []ast.NameRef) {
	if !c.track.declarations {
		return
	}
	for _, ref := range names {
		f := c.frame()
		if c.track.uses && f.Kind != FrameModule {
			if sp, used := f.Uses[ref.Name]; used {
				c.report(diag.UsedPriorGlobalDecl, sp, "Name '%s' is used prior to global declaration", c.name(ref.Name))
				delete(f.Uses, ref.Name)
			}
		}
		f.declareGlobal(ref.Name, ref.Span)
		if f.Kind == FrameFunction && f.IsNonlocal(ref.Name) {
			c.reportConflict(f, ref)
		}
	}
}

func (c *checker) declareNonlocals(names []ast.NameRef) {
	if !c.track.declarations {
		return
	}
	for _, ref := range names {
		f := c.frame()
		if c.enabled(diag.NonlocalWithoutBind) && !c.boundInEnclosing(f, ref.Name) {
			c.report(diag.NonlocalWithoutBind, ref.Span, "nonlocal name %s found without binding", c.name(ref.Name))
		}
		f.declareNonlocal(ref.Name, ref.Span)
		if f.Kind == FrameFunction && f.IsGlobal(ref.Name) {
			c.reportConflict(f, ref)
		}
	}
}

func (c *checker) reportConflict(f *Frame, ref ast.NameRef) {
	if f.markConflict(ref.Name) {
		c.report(diag.NonlocalAndGlobal, ref.Span, "Name '%s' is nonlocal and global", c.name(ref.Name))
	}
}

// boundInEnclosing searches the enclosing function frames, skipping class
// bodies, for a binding or nonlocal declaration of name made so far. A
// frame that declared name global does not bind it. The module frame ends
// the search, so a module-level nonlocal never finds a binding.
func (c *checker) boundInEnclosing(f *Frame, name source.StringID) bool {
	if f.Kind == FrameModule {
		return false
	}
	for id := f.Parent; id.IsValid(); {
		p := c.frames.Get(id)
		if p == nil || p.Kind == FrameModule {
			return false
		}
		if p.Kind != FrameClass && !p.IsGlobal(name) && (p.IsBound(name) || p.IsNonlocal(name)) {
			return true
		}
		id = p.Parent
	}
	return false
}
