package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Filter decides which files under a directory are analyzed. Patterns are
// matched against slash-separated paths relative to the walked root, with
// '/' as the separator so that "*" stays within one segment and "**" spans many.
type Filter struct {
	extensions map[string]struct{}
	exclude    []glob.Glob
	patterns   []string
}

func NewFilter(extensions, exclude []string) (*Filter, error) {
	f := &Filter{
		extensions: make(map[string]struct{}, len(extensions)),
		exclude:    make([]glob.Glob, 0, len(exclude)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		f.extensions[ext] = struct{}{}
	}
	if len(f.extensions) == 0 {
		f.extensions[".py"] = struct{}{}
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, g)
		f.patterns = append(f.patterns, pattern)
	}
	return f, nil
}

// Patterns returns the exclude patterns as written.
func (f *Filter) Patterns() []string {
	return f.patterns
}

// MatchFile reports whether rel has a configured extension and is not excluded.
func (f *Filter) MatchFile(rel string) bool {
	if _, ok := f.extensions[strings.ToLower(filepath.Ext(rel))]; !ok {
		return false
	}
	return !f.excluded(filepath.ToSlash(rel))
}

// SkipDir reports whether the directory rel and everything below it is excluded.
func (f *Filter) SkipDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	return f.excluded(rel + "/")
}

func (f *Filter) excluded(rel string) bool {
	for _, g := range f.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
