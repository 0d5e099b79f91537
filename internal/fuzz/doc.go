// Package fuzztests holds fuzz harnesses for the analysis pipeline
// (source, lexer, parser, analyzer). They check that arbitrary input never
// panics or hangs and that a failed parse yields a single syntax error.
package fuzztests
