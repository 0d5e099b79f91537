// Package pipeline defines the progress events the driver publishes while
// analyzing a batch of files.
package pipeline

import "time"

// Stage describes a step of one file's analysis.
type Stage string

const (
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageAnalyze Stage = "analyze"
)

// Status is where a file stands within its current stage. Done and Error
// are final; Error covers read failures and cancellation.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole batch when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Issues  int
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers publish without coordination.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit is a no-op for a nil sink.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
