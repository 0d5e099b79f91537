// Package token defines lexical token kinds for pyrint's lexer.
//
// Token.Text is the source text covered by Token.Span. NEWLINE, INDENT and
// DEDENT are synthetic: their Text is empty and their Span has zero width,
// placed where the layout change was detected. Soft keywords (match, case,
// type) stay identifiers; only hard keywords get their own kinds.
package token
