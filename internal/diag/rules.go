package diag

import (
	"fmt"
	"slices"
)

// RuleSet decides which rules are evaluated. A nil *RuleSet enables everything.
// It is read-only after construction and safe to share between workers.
type RuleSet struct {
	enabled map[Code]struct{}
}

// AllRules enables every known rule.
func AllRules() *RuleSet {
	rs := &RuleSet{enabled: make(map[Code]struct{}, len(codeTable))}
	for _, c := range AllCodes() {
		rs.enabled[c] = struct{}{}
	}
	return rs
}

// NewRuleSet starts from enable (all rules when empty) and removes disable.
func NewRuleSet(enable, disable []Code) (*RuleSet, error) {
	rs := &RuleSet{enabled: make(map[Code]struct{}, len(codeTable))}
	if len(enable) == 0 {
		enable = AllCodes()
	}
	for _, c := range enable {
		if !c.Known() {
			return nil, fmt.Errorf("cannot enable unknown rule %s", c.ID())
		}
		rs.enabled[c] = struct{}{}
	}
	for _, c := range disable {
		if !c.Known() {
			return nil, fmt.Errorf("cannot disable unknown rule %s", c.ID())
		}
		delete(rs.enabled, c)
	}
	return rs, nil
}

// ParseRuleSet is NewRuleSet over textual codes or symbols.
func ParseRuleSet(enable, disable []string) (*RuleSet, error) {
	on, err := parseCodes(enable)
	if err != nil {
		return nil, err
	}
	off, err := parseCodes(disable)
	if err != nil {
		return nil, err
	}
	return NewRuleSet(on, off)
}

func parseCodes(names []string) ([]Code, error) {
	out := make([]Code, 0, len(names))
	for _, n := range names {
		c, err := ParseCode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (rs *RuleSet) Enabled(c Code) bool {
	if rs == nil {
		return true
	}
	_, ok := rs.enabled[c]
	return ok
}

// AnyEnabled reports whether at least one of codes is enabled.
func (rs *RuleSet) AnyEnabled(codes ...Code) bool {
	for _, c := range codes {
		if rs.Enabled(c) {
			return true
		}
	}
	return false
}

// Codes lists the enabled rules in ascending order.
func (rs *RuleSet) Codes() []Code {
	if rs == nil {
		return AllCodes()
	}
	out := make([]Code, 0, len(rs.enabled))
	for c := range rs.enabled {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
