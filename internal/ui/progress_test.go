package ui

import (
	"strings"
	"testing"

	"pyrint/internal/pipeline"
)

func TestProgressModelCountsFinishedFiles(t *testing.T) {
	files := []string{"a.py", "b.py"}
	m := NewProgressModel("check", files, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.py", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	if m.items[0].status != "parsing" || m.finished != 0 {
		t.Fatalf("unexpected state after parse event: %+v", m.items[0])
	}
	m.applyEvent(pipeline.Event{File: "a.py", Stage: pipeline.StageAnalyze, Status: pipeline.StatusDone, Issues: 2})
	m.applyEvent(pipeline.Event{File: "b.py", Stage: pipeline.StageRead, Status: pipeline.StatusError})
	// A repeated final event must not count twice.
	m.applyEvent(pipeline.Event{File: "b.py", Stage: pipeline.StageRead, Status: pipeline.StatusError})
	m.applyEvent(pipeline.Event{File: "unknown.py", Stage: pipeline.StageRead, Status: pipeline.StatusWorking})

	if m.finished != 2 || m.issues != 2 {
		t.Fatalf("finished=%d issues=%d, want 2 and 2", m.finished, m.issues)
	}
	if m.items[0].status != "issues" || m.items[1].status != "error" {
		t.Fatalf("unexpected statuses %q %q", m.items[0].status, m.items[1].status)
	}
	view := m.View()
	if !strings.Contains(view, "(2/2 files, 2 issues)") {
		t.Fatalf("unexpected header in view:\n%s", view)
	}
}

func TestStatusLabels(t *testing.T) {
	cases := []struct {
		ev   pipeline.Event
		want string
	}{
		{pipeline.Event{Stage: pipeline.StageRead, Status: pipeline.StatusQueued}, "queued"},
		{pipeline.Event{Stage: pipeline.StageRead, Status: pipeline.StatusWorking}, "reading"},
		{pipeline.Event{Stage: pipeline.StageAnalyze, Status: pipeline.StatusWorking}, "analyzing"},
		{pipeline.Event{Stage: pipeline.StageParse, Status: pipeline.StatusError}, "error"},
		{pipeline.Event{Stage: pipeline.StageAnalyze, Status: pipeline.StatusDone}, "done"},
		{pipeline.Event{Stage: pipeline.StageAnalyze, Status: pipeline.StatusDone, Issues: 1}, "issues"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.ev); got != tc.want {
			t.Errorf("statusLabel(%+v) = %q, want %q", tc.ev, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("pkg/module.py", 40); got != "pkg/module.py" {
		t.Fatalf("short path changed: %q", got)
	}
	if got := truncate("very/long/path/to/module.py", 10); got != "very/lo..." {
		t.Fatalf("truncate = %q", got)
	}
}
