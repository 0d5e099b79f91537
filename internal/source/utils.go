package source

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// normalizeCRLF rewrites "\r\n" to "\n". A lone '\r' is left for the lexer.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, lf))
	for off, b := range content {
		if b != '\n' {
			continue
		}
		n, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(err)
		}
		idx = append(idx, n)
	}
	return idx
}

// lineStart returns the offset at which the 0-based line begins.
func lineStart(lineIdx []uint32, line int) uint32 {
	if line == 0 {
		return 0
	}
	return lineIdx[line-1] + 1
}

// position resolves off, clamped to the content length.
func (f *File) position(off uint32) LineCol {
	off = min(off, uint32(len(f.Content)))
	// Newlines strictly before off give the 0-based line.
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	col := utf8.RuneCount(f.Content[lineStart(f.LineIdx, line):off])
	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(err)
	}
	colNo, err := safecast.Conv[uint32](col + 1)
	if err != nil {
		panic(err)
	}
	return LineCol{Line: lineNo, Col: colNo}
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func relativeTo(p, base string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if base == "" {
		return cleanPath(abs)
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return cleanPath(abs)
	}
	rel, err := filepath.Rel(absBase, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(abs)
	}
	return cleanPath(rel)
}
