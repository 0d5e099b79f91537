// Package diag defines the diagnostic model shared by the parser, the analyzer
// and the output layer.
//
// A Diagnostic carries a rule Code (rendered as E0102 and the symbol
// function-redefined), a Severity, a message and the primary source.Span.
// Producers talk to a Reporter; BagReporter stores into a per-file Bag that
// preserves report order, and FilterReporter drops codes a RuleSet disables.
//
// Rendering lives in internal/diagfmt. The short form produced by
// FormatShortDiagnostics is the one golden files compare against.
package diag
