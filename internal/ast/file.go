package ast

import (
	"pyrint/internal/source"
)

// File is the root of one parsed module.
type File struct {
	Span source.Span
	Body []StmtID
}

type Files struct {
	*Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
