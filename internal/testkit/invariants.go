// Package testkit holds assertions shared by package tests.
package testkit

import (
	"errors"
	"fmt"

	"pyrint/internal/ast"
	"pyrint/internal/source"
)

// CheckSpanInvariants checks the module span of a parsed file against its
// top-level statements. Each statement span must be non-empty, belong to sf
// and sit inside the module span, and the module span must stay within the
// file content.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return errors.New("nil builder or file")
	}
	mod := b.Files.Get(fileID)
	switch {
	case mod == nil:
		return fmt.Errorf("no module node %d", fileID)
	case len(mod.Body) == 0:
		return nil
	}

	outer := mod.Span
	if err := checkSpan("module", outer, sf); err != nil {
		return err
	}
	if int(outer.End) > len(sf.Content) {
		return fmt.Errorf("module span %v ends past the content (%d bytes)", outer, len(sf.Content))
	}
	for _, id := range mod.Body {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("statement %d missing from the arena", id)
		}
		if err := checkSpan("statement", st.Span, sf); err != nil {
			return err
		}
		if st.Span.Start < outer.Start || st.Span.End > outer.End {
			return fmt.Errorf("statement span %v escapes module span %v", st.Span, outer)
		}
	}
	return nil
}

func checkSpan(what string, sp source.Span, sf *source.File) error {
	if sp.File != sf.ID {
		return fmt.Errorf("%s span %v belongs to file %d, want %d", what, sp, sp.File, sf.ID)
	}
	if sp.End <= sp.Start {
		return fmt.Errorf("%s span %v is empty", what, sp)
	}
	return nil
}
