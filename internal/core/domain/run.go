// internal/core/domain/run.go
package domain

import (
	"fmt"
	"time"
)

// TimeoutExitCode is the sentinel exit code recorded when a pipeline run
// is terminated for exceeding its timeout. Real processes report -1 when
// killed by a signal; the sentinel keeps timeouts distinguishable.
const TimeoutExitCode = -2

// PipelineRun is the record of one pipeline execution for a topic.
// It is created when the invoker starts the child process and immutable
// once the process terminates.
type PipelineRun struct {
	// Topic is the research subject this run was started for
	Topic string

	// StartTime is when the child process was started
	StartTime time.Time

	// Duration is the total wall-clock time of the run
	Duration time.Duration

	// ExitCode is the process exit code, 0 on success,
	// TimeoutExitCode when the run was killed on timeout
	ExitCode int

	// Stdout is the full captured standard output
	Stdout string

	// Stderr is the full captured standard error
	Stderr string
}

// Succeeded reports whether the run exited cleanly.
func (r *PipelineRun) Succeeded() bool {
	return r.ExitCode == 0
}

// TimedOut reports whether the run was terminated on timeout.
func (r *PipelineRun) TimedOut() bool {
	return r.ExitCode == TimeoutExitCode
}

// String returns a readable one-line description of the run.
func (r *PipelineRun) String() string {
	return fmt.Sprintf("PipelineRun{topic=%q, exit=%d, duration=%s, stdout=%dB, stderr=%dB}",
		r.Topic, r.ExitCode, r.Duration, len(r.Stdout), len(r.Stderr))
}
