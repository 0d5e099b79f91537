package diag

import (
	"pyrint/internal/source"
)

// Note points at a secondary location, such as the first definition of a
// redefined function.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported issue. It is never mutated after it reaches a Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Primary is the span whose start line and column are reported.
	Primary source.Span
	Notes   []Note
}
