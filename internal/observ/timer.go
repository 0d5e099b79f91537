package observ

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Phase names recorded for every analyzed file.
const (
	PhaseRead    = "read"
	PhaseParse   = "parse"
	PhaseAnalyze = "analyze"
)

type span struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

// Timer records the phases of one file on one goroutine.
type Timer struct {
	spans []span
}

func NewTimer() *Timer { return &Timer{spans: make([]span, 0, 3)} }

// Begin opens a phase; pass the returned handle to End.
func (t *Timer) Begin(name string) int {
	t.spans = append(t.spans, span{name: name, started: time.Now()})
	return len(t.spans) - 1
}

// End closes phase h and returns its duration. Unknown handles yield 0.
func (t *Timer) End(h int, note string) time.Duration {
	if h < 0 || h >= len(t.spans) {
		return 0
	}
	s := &t.spans[h]
	s.took, s.note = time.Since(s.started), note
	return s.took
}

func (t *Timer) Summary() string {
	return t.Report().Summary()
}

type PhaseReport struct {
	Name       string  `json:"name" yaml:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the serializable form of a Timer, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases" msgpack:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, s := range t.spans {
		ms := millis(s.took)
		r.Phases = append(r.Phases, PhaseReport{Name: s.name, DurationMS: ms, Note: s.note})
		r.TotalMS += ms
	}
	return r
}

func (r Report) index(name string) int {
	return slices.IndexFunc(r.Phases, func(p PhaseReport) bool { return p.Name == name })
}

// Duration returns the milliseconds spent in the named phase.
func (r Report) Duration(name string) (float64, bool) {
	if i := r.index(name); i >= 0 {
		return r.Phases[i].DurationMS, true
	}
	return 0, false
}

// Summary is a fixed-width table with a closing total row.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			fmt.Fprintf(&b, "  // %s", note)
		}
		b.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return b.String()
}

// Merge sums other into r phase by phase. New phase names are appended
// without their notes.
func (r *Report) Merge(other Report) {
	for _, p := range other.Phases {
		if i := r.index(p.Name); i >= 0 {
			r.Phases[i].DurationMS += p.DurationMS
			continue
		}
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
	}
	r.TotalMS += other.TotalMS
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1000
}
