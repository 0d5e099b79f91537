package diag

import (
	"testing"

	"pyrint/internal/source"
)

func TestRuleSetDefaults(t *testing.T) {
	var nilSet *RuleSet
	if !nilSet.Enabled(NotInLoop) {
		t.Fatalf("nil rule set must enable everything")
	}
	rs, err := NewRuleSet(nil, []Code{UsedPriorGlobalDecl})
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	if rs.Enabled(UsedPriorGlobalDecl) {
		t.Fatalf("disabled rule reported as enabled")
	}
	if !rs.Enabled(SyntaxError) || !rs.Enabled(NotInLoop) {
		t.Fatalf("other rules must stay enabled")
	}
	if got := len(rs.Codes()); got != len(AllCodes())-1 {
		t.Fatalf("enabled count = %d", got)
	}
}

func TestRuleSetEnableList(t *testing.T) {
	rs, err := ParseRuleSet([]string{"E0115", "nonlocal-without-binding"}, []string{"E0115"})
	if err != nil {
		t.Fatalf("ParseRuleSet: %v", err)
	}
	codes := rs.Codes()
	if len(codes) != 1 || codes[0] != NonlocalWithoutBind {
		t.Fatalf("unexpected enabled codes %v", codes)
	}
	if !rs.AnyEnabled(NonlocalAndGlobal, NonlocalWithoutBind) {
		t.Fatalf("AnyEnabled should see E0117")
	}
	if rs.AnyEnabled(NonlocalAndGlobal, UsedPriorGlobalDecl) {
		t.Fatalf("AnyEnabled should be false")
	}
}

func TestRuleSetRejectsUnknown(t *testing.T) {
	if _, err := NewRuleSet([]Code{Code(9999)}, nil); err == nil {
		t.Fatalf("unknown code must be rejected")
	}
	if _, err := ParseRuleSet(nil, []string{"bogus"}); err == nil {
		t.Fatalf("unknown symbol must be rejected")
	}
}

func TestFilterReporterAndBagLimit(t *testing.T) {
	rs, err := NewRuleSet(nil, []Code{SyntaxError})
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	bag := NewBag(2)
	r := FilterReporter{Next: BagReporter{Bag: bag}, Rules: rs}

	sp := source.Span{}
	ReportError(r, SyntaxError, sp, "dropped by rules").Emit()
	for range 3 {
		ReportError(r, NotInLoop, sp, "'continue' not properly in loop").Emit()
	}

	if bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", bag.Dropped())
	}
	if bag.Has(SyntaxError) || !bag.Has(NotInLoop) || !bag.HasErrors() {
		t.Fatalf("unexpected bag contents %+v", bag.Items())
	}
}

func TestPendingEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, FunctionRedefined, source.Span{Start: 4, End: 5}, "function already defined line 1").
		WithNote(source.Span{}, "previous definition")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0]; len(got.Notes) != 1 || got.Severity != SevError {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
}

func TestReporterFuncAndFilter(t *testing.T) {
	var seen []Code
	rules, err := ParseRuleSet(nil, []string{"not-in-loop"})
	if err != nil {
		t.Fatal(err)
	}
	r := FilterReporter{Next: ReporterFunc(func(d Diagnostic) { seen = append(seen, d.Code) }), Rules: rules}
	ReportError(r, NotInLoop, source.Span{}, "'continue' not properly in loop").Emit()
	ReportError(r, FunctionRedefined, source.Span{}, "function already defined line 1").Emit()
	if len(seen) != 1 || seen[0] != FunctionRedefined {
		t.Fatalf("seen = %v", seen)
	}
	if SevWarning.String() != "warning" || Severity(9).String() != "unknown" {
		t.Fatalf("unexpected severity names")
	}
}
