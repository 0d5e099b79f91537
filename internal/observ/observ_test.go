package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin(PhaseParse)
	tm.End(idx, "12 stmts")
	tm.End(99, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != PhaseParse || rep.Phases[0].Note != "12 stmts" {
		t.Fatalf("unexpected phase: %+v", rep.Phases[0])
	}
	if _, ok := rep.Duration(PhaseParse); !ok {
		t.Fatalf("parse phase missing")
	}
	if _, ok := rep.Duration(PhaseAnalyze); ok {
		t.Fatalf("analyze phase should be absent")
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "parse") || !strings.Contains(sum, "// 12 stmts") || !strings.Contains(sum, "total") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestEmptyTimerReport(t *testing.T) {
	var tm *Timer
	if rep := tm.Report(); len(rep.Phases) != 0 || rep.TotalMS != 0 {
		t.Fatalf("nil timer should report nothing, got %+v", rep)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "analyze", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "read", DurationMS: 1}, {Name: "parse", DurationMS: 4}}}
	a.Merge(b)
	if a.TotalMS != 8 {
		t.Fatalf("total = %v, want 8", a.TotalMS)
	}
	want := []PhaseReport{{Name: "parse", DurationMS: 5}, {Name: "analyze", DurationMS: 2}, {Name: "read", DurationMS: 1}}
	if len(a.Phases) != len(want) {
		t.Fatalf("phases = %+v", a.Phases)
	}
	for i := range want {
		if a.Phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, a.Phases[i], want[i])
		}
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.FileAnalyzed(OutcomeClean)
	m.FileAnalyzed(OutcomeIssues)
	m.FileAnalyzed(OutcomeIssues)
	m.Issue("E0102")
	m.ObservePhase(PhaseParse, 2*time.Millisecond)
	m.WatchRun()

	if got := testutil.ToFloat64(m.filesAnalyzed.WithLabelValues(OutcomeIssues)); got != 2 {
		t.Fatalf("issues outcome = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.issues.WithLabelValues("E0102")); got != 1 {
		t.Fatalf("E0102 count = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.phaseDuration); n != 1 {
		t.Fatalf("histogram series = %d, want 1", n)
	}

	var b strings.Builder
	if err := m.WriteText(&b); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	for _, name := range []string{"pyrint_files_analyzed_total", "pyrint_issues_total", "pyrint_file_analysis_seconds", "pyrint_watch_runs_total"} {
		if !strings.Contains(b.String(), name) {
			t.Errorf("exposition lacks %s", name)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.FileAnalyzed(OutcomeClean)
	m.Issue("E0001")
	m.ObservePhase(PhaseRead, time.Millisecond)
	m.WatchRun()
}
