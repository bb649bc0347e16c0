package pipeline

import "fmt"

// ProgressStatus is the state of a stage within one run.
type ProgressStatus string

const (
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressSkipped  ProgressStatus = "skipped"
)

// ProgressEvent is emitted as each stage of a run starts and finishes.
type ProgressEvent struct {
	Job     string
	Stage   Stage
	Status  ProgressStatus
	Message string
}

// ProgressReporter emits progress events through a buffered channel.
type ProgressReporter struct {
	ch chan ProgressEvent
}

// NewProgressReporter creates a ProgressReporter with a buffered channel of size 64.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		ch: make(chan ProgressEvent, 64),
	}
}

// Emit sends a progress event in a non-blocking fashion.
// If the channel is full, the event is silently dropped.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	select {
	case pr.ch <- event:
	default:
	}
}

// Subscribe returns a read-only channel for consuming progress events.
func (pr *ProgressReporter) Subscribe() <-chan ProgressEvent {
	return pr.ch
}

// Close closes the progress event channel.
func (pr *ProgressReporter) Close() {
	close(pr.ch)
}

// FormatProgress formats a ProgressEvent as a human-readable status line.
func FormatProgress(event ProgressEvent) string {
	prefix := ""
	if event.Job != "" {
		prefix = "[" + event.Job + "] "
	}
	switch event.Status {
	case ProgressWorking:
		return fmt.Sprintf("  %s● %s...", prefix, event.Stage)
	case ProgressComplete:
		if event.Message != "" {
			return fmt.Sprintf("  %s✓ %s complete: %s", prefix, event.Stage, event.Message)
		}
		return fmt.Sprintf("  %s✓ %s complete", prefix, event.Stage)
	case ProgressSkipped:
		return fmt.Sprintf("  %s○ %s skipped", prefix, event.Stage)
	default:
		return fmt.Sprintf("  %s? %s (unknown status)", prefix, event.Stage)
	}
}
