package diag

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Code is the numeric part of a rule identifier such as E0102.
type Code uint16

const (
	UnknownCode Code = 0

	SyntaxError Code = 1

	InitIsGenerator       Code = 100
	ReturnInInit          Code = 101
	FunctionRedefined     Code = 102
	ReturnOutsideFunction Code = 104
	YieldOutsideFunction  Code = 105
	ReturnArgInGenerator  Code = 106
	NonexistentOperator   Code = 107
	DuplicateArgumentName Code = 108
	DuplicateKey          Code = 109
	TooManyStarExprs      Code = 112
	StarNeedsTarget       Code = 114
	NonlocalAndGlobal     Code = 115
	NotInLoop             Code = 116
	NonlocalWithoutBind   Code = 117
	UsedPriorGlobalDecl   Code = 118

	NoMethodArgument Code = 211
	NoSelfArgument   Code = 213

	MisplacedBareRaise   Code = 704
	NotImplementedRaised Code = 711

	AwaitOutsideAsync Code = 1142
)

type codeInfo struct {
	symbol string
	title  string
}

var codeTable = map[Code]codeInfo{
	UnknownCode:           {"unknown", "unknown diagnostic"},
	SyntaxError:           {"syntax-error", "source could not be parsed"},
	InitIsGenerator:       {"init-is-generator", "__init__ method is a generator"},
	ReturnInInit:          {"return-in-init", "explicit return with a value in __init__"},
	FunctionRedefined:     {"function-redefined", "function redefined in the same scope"},
	ReturnOutsideFunction: {"return-outside-function", "return outside function"},
	YieldOutsideFunction:  {"yield-outside-function", "yield outside function"},
	ReturnArgInGenerator:  {"return-arg-in-generator", "return with a value inside a generator"},
	NonexistentOperator:   {"nonexistent-operator", "use of the non-existent <> operator"},
	DuplicateArgumentName: {"duplicate-argument-name", "duplicate parameter name in function definition"},
	DuplicateKey:          {"duplicate-key", "duplicate constant key in dictionary display"},
	TooManyStarExprs:      {"too-many-star-expressions", "more than one starred expression in assignment"},
	StarNeedsTarget:       {"star-needs-assignment-target", "starred expression used outside an assignment target"},
	NonlocalAndGlobal:     {"nonlocal-and-global", "name declared both nonlocal and global"},
	NotInLoop:             {"not-in-loop", "continue or break outside loop"},
	NonlocalWithoutBind:   {"nonlocal-without-binding", "nonlocal name without an enclosing binding"},
	UsedPriorGlobalDecl:   {"used-prior-global-declaration", "name used prior to its global declaration"},
	NoMethodArgument:      {"no-method-argument", "method has no argument"},
	NoSelfArgument:        {"no-self-argument", "method should have self as first argument"},
	MisplacedBareRaise:    {"misplaced-bare-raise", "bare raise outside an except clause"},
	NotImplementedRaised:  {"notimplemented-raised", "NotImplemented raised instead of NotImplementedError"},
	AwaitOutsideAsync:     {"await-outside-async", "await outside an async function"},
}

// ID renders the code as "E" followed by four digits.
func (c Code) ID() string {
	return fmt.Sprintf("E%04d", uint16(c))
}

// Symbol is the stable kebab-case name of the rule.
func (c Code) Symbol() string {
	if info, ok := codeTable[c]; ok {
		return info.symbol
	}
	return codeTable[UnknownCode].symbol
}

func (c Code) Title() string {
	if info, ok := codeTable[c]; ok {
		return info.title
	}
	return codeTable[UnknownCode].title
}

func (c Code) Known() bool {
	_, ok := codeTable[c]
	return ok && c != UnknownCode
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// AllCodes lists every known rule in ascending order.
func AllCodes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := range codeTable {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// ParseCode accepts an identifier ("E0102", "e102") or a symbol ("function-redefined").
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownCode, fmt.Errorf("empty rule code")
	}
	if s[0] == 'E' || s[0] == 'e' {
		if n, err := strconv.ParseUint(s[1:], 10, 16); err == nil {
			c := Code(n)
			if !c.Known() {
				return UnknownCode, fmt.Errorf("unknown rule code %q", s)
			}
			return c, nil
		}
	}
	for c, info := range codeTable {
		if c != UnknownCode && info.symbol == s {
			return c, nil
		}
	}
	return UnknownCode, fmt.Errorf("unknown rule code %q", s)
}
