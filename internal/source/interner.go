package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StringID names an interned string. The zero ID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and literal text for one parse.
type Interner struct {
	strs []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	in := &Interner{ids: make(map[string]StringID)}
	in.Intern("")
	return in
}

func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	s = strings.Clone(s)
	id := StringID(len(in.strs)) // #nosec G115 -- one file never holds 2^32 names
	in.strs = append(in.strs, s)
	in.ids[s] = id
	return id
}

// InternName applies NFKC first, as identifiers are compared after
// normalization. ASCII is already in normal form.
func (in *Interner) InternName(s string) StringID {
	if norm.NFKC.IsNormalString(s) {
		return in.Intern(s)
	}
	return in.Intern(norm.NFKC.String(s))
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("unknown string id %d", id))
	}
	return s
}

// Len includes the reserved empty string.
func (in *Interner) Len() int {
	return len(in.strs)
}
