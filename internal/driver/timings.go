package driver

import (
	"pyrint/internal/observ"
)

// Timing is the per-file and batch-wide phase breakdown printed by --timings.
type Timing struct {
	Path    string               `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	TotalMS float64              `json:"total_ms" yaml:"total_ms" msgpack:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases" yaml:"phases" msgpack:"phases"`
}

// Timings returns one entry per result followed by the batch total (empty Path).
func Timings(results []FileResult) []Timing {
	out := make([]Timing, 0, len(results)+1)
	var total observ.Report
	for _, r := range results {
		if len(r.Timing.Phases) == 0 {
			continue
		}
		out = append(out, Timing{Path: r.Path, TotalMS: r.Timing.TotalMS, Phases: r.Timing.Phases})
		total.Merge(r.Timing)
	}
	out = append(out, Timing{TotalMS: total.TotalMS, Phases: total.Phases})
	return out
}
