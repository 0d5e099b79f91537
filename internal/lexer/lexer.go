package lexer

import (
	"fmt"

	"pyrint/internal/source"
	"pyrint/internal/token"
)

type openBracket struct {
	ch  byte
	off uint32
}

// Lexer turns one file into tokens, resolving indentation into
// NEWLINE/INDENT/DEDENT. After EOF it keeps returning EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead for Peek
	queue  []token.Token

	indents     []int         // indentation widths; the bottom entry is 0
	brackets    []openBracket // layout is ignored while non-empty
	atLineStart bool
	lineHasToks bool
	done        bool

	err *Error
}

func New(file *source.File, opts Options) *Lexer {
	if opts.TabSize <= 0 {
		opts.TabSize = 8
	}
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Err returns the first lexical error, or nil.
func (lx *Lexer) Err() *Error {
	return lx.err
}

// Next returns the next token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok
	}
	if lx.done || lx.err != nil {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Token {
	for {
		if lx.atLineStart && len(lx.brackets) == 0 {
			width, blank := lx.measureIndent()
			if blank {
				if lx.cursor.EOF() {
					return lx.finish()
				}
				continue
			}
			lx.atLineStart = false
			if tok, ok := lx.layout(width); ok {
				return tok
			}
		}

		ch := lx.cursor.Peek()
		switch {
		case lx.cursor.EOF():
			return lx.finish()
		case ch == ' ' || ch == '\t' || ch == '\f' || ch == '\r':
			lx.cursor.Bump()
			continue
		case ch == '#':
			lx.skipComment()
			continue
		case ch == '\\':
			if tok, ok := lx.lineContinuation(); !ok {
				return tok
			}
			continue
		case ch == '\n':
			sp := lx.emptySpan()
			lx.cursor.Bump()
			if len(lx.brackets) > 0 {
				continue
			}
			lx.atLineStart = true
			if lx.lineHasToks {
				lx.lineHasToks = false
				return token.Token{Kind: token.Newline, Span: sp}
			}
			continue
		}

		lx.lineHasToks = true
		return lx.scanToken()
	}
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.At(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString(lx.cursor.Mark(), "")
	default:
		return lx.scanOperatorOrPunct()
	}
}

// measureIndent consumes leading whitespace of a physical line.
// Blank and comment-only lines are consumed entirely and reported as blank.
func (lx *Lexer) measureIndent() (width int, blank bool) {
	for {
		switch lx.cursor.Peek() {
		case ' ':
			width++
		case '\t':
			width = (width/lx.opts.TabSize + 1) * lx.opts.TabSize
		case '\f':
			width = 0
		case '\r':
		case '#':
			lx.skipComment()
			lx.cursor.Eat('\n')
			return 0, true
		case '\n':
			lx.cursor.Bump()
			return 0, true
		default:
			if lx.cursor.EOF() {
				return 0, true
			}
			return width, false
		}
		lx.cursor.Bump()
	}
}

// layout compares width with the indentation stack.
func (lx *Lexer) layout(width int) (token.Token, bool) {
	sp := lx.emptySpan()
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		return token.Token{Kind: token.Indent, Span: sp}, true
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.indents[len(lx.indents)-1] != width {
			lx.queue = lx.queue[:0]
			return lx.fail(KindBadDedent, sp, "unindent does not match any outer indentation level"), true
		}
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok, true
	}
	return token.Token{}, false
}

// finish emits the closing NEWLINE and DEDENTs, then EOF.
func (lx *Lexer) finish() token.Token {
	sp := lx.emptySpan()
	if len(lx.brackets) > 0 {
		lx.done = true
		open := lx.brackets[len(lx.brackets)-1]
		at := source.Span{File: lx.file.ID, Start: open.off, End: open.off + 1}
		return lx.fail(KindUnexpectedEOF, at, fmt.Sprintf("'%c' was never closed", open.ch))
	}
	lx.done = true
	if lx.lineHasToks {
		lx.lineHasToks = false
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: sp})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.queue = append(lx.queue, token.Token{Kind: token.EOF, Span: sp})
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// lineContinuation consumes a backslash-newline pair.
func (lx *Lexer) lineContinuation() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.Eat('\n') {
		return token.Token{}, true
	}
	if lx.cursor.EOF() {
		return lx.fail(KindUnexpectedEOF, lx.cursor.SpanFrom(start), "unexpected EOF while parsing"), false
	}
	return lx.fail(KindBadContinuation, lx.cursor.SpanFrom(start), "unexpected character after line continuation character"), false
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the source file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}
