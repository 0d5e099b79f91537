package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of one analysis unit. A Span's FileID only means
// something inside the FileSet that produced it. Not safe for concurrent
// mutation.
type FileSet struct {
	files []File
	base  string
}

func NewFileSet() *FileSet {
	return &FileSet{files: make([]File, 0, 1)}
}

// SetBaseDir sets the directory relative paths are computed against.
func (s *FileSet) SetBaseDir(dir string) {
	s.base = dir
}

// BaseDir returns the configured base directory, or the working directory.
func (s *FileSet) BaseDir() string {
	if s.base != "" {
		return s.base
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Load reads path from disk. A read error leaves the set unchanged.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- reading user-selected sources is the point
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return s.AddSource(path, raw), nil
}

// AddSource strips a UTF-8 BOM, turns CRLF into LF and stores the result.
func (s *FileSet) AddSource(path string, raw []byte) FileID {
	return s.add(path, raw, 0)
}

// AddVirtual is AddSource for in-memory content such as tests and stdin.
func (s *FileSet) AddVirtual(name string, raw []byte) FileID {
	return s.add(name, raw, FileVirtual)
}

func (s *FileSet) add(path string, raw []byte, flags FileFlags) FileID {
	content, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	content, crlf := normalizeCRLF(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	s.files = append(s.files, File{
		ID:      id,
		Path:    cleanPath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	return id
}

func (s *FileSet) Get(id FileID) *File {
	return &s.files[id]
}

func (s *FileSet) Len() int {
	return len(s.files)
}

// Contains reports whether sp refers to a file of s.
func (s *FileSet) Contains(sp Span) bool {
	return int(sp.File) < len(s.files)
}

// Resolve converts both ends of span to line and column.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &s.files[span.File]
	return f.position(span.Start), f.position(span.End)
}

// GetLine returns the 1-based line n without its terminator, or "" when out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := lineStart(f.LineIdx, int(n)-1)
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}

// RelPath returns Path relative to base when it lies inside base and the
// absolute path otherwise.
func (f *File) RelPath(base string) string {
	return relativeTo(f.Path, base)
}
