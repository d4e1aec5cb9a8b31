// internal/core/ports/ports.go
package ports

import (
	"context"

	"noesis/internal/core/domain"
)

// Prober is the port for tool-server reachability probes. Implementations
// connect to the server described by the descriptor and verify it answers;
// the returned detail is free text (e.g. the tool names it advertises).
type Prober interface {
	// Probe checks reachability within the context's deadline.
	// A non-nil error means unreachable; it never aborts the caller.
	Probe(ctx context.Context, desc domain.ToolServerDescriptor) (detail string, err error)
}

// ArtifactReader is the read side of the artifact store the extractor
// depends on. Absence of any artifact kind is a normal return, never an
// error; diag carries a human-readable reason when something was present
// but unusable.
type ArtifactReader interface {
	// ReadStructured returns the structured search data, or nil when the
	// backing file is missing or unparseable (diag explains the latter).
	ReadStructured() (records []domain.SearchRecord, diag string)

	// ReadSummary returns the dedicated summary artifact, "" when absent.
	ReadSummary() string

	// ListImages returns readable image paths, newest first. A missing or
	// empty directory yields an empty set with no diagnostic.
	ListImages() (paths []string, diag string)
}

// Invoker is the port for running the agent pipeline as an isolated unit
// of work. Run failures (nonzero exit, timeout) are reported inside the
// returned PipelineRun, not as errors.
type Invoker interface {
	Invoke(ctx context.Context, topic string) (*domain.PipelineRun, error)
}

// ServerDirectory exposes the registry views the research flow needs:
// the dispatch list (enabled servers only), the full diagnostics list,
// and a concurrent health sweep.
type ServerDirectory interface {
	List(caps ...domain.Capability) []domain.ToolServerDescriptor
	ListAll() []domain.ToolServerDescriptor
	CheckAll(ctx context.Context) map[string]domain.HealthStatus
}

// Extractor normalizes a finished pipeline run into a PipelineResult.
// It is total: degradation surfaces as warnings on the result, never as
// an error.
type Extractor interface {
	Extract(run *domain.PipelineRun, topic string) *domain.PipelineResult
}

// Presenter renders results and diagnostics to the user-facing surface.
// Implementations must tolerate partial results: absent fields plus a
// nonempty warnings list is a renderable state, not a failure.
type Presenter interface {
	// RunStarted announces that a pipeline run began
	RunStarted(topic string)

	// RunFinished announces the run outcome before extraction
	RunFinished(run *domain.PipelineRun)

	// ShowResult renders the normalized result, however degraded
	ShowResult(result *domain.PipelineResult)

	// ShowHealth renders the diagnostics view of all configured servers
	ShowHealth(statuses map[string]domain.HealthStatus)
}
