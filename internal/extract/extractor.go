// Package extract turns the raw aftermath of a pipeline run into a
// normalized PipelineResult. The pipeline has no authoritative output
// schema: the summary may live in a dedicated artifact, behind a label
// in stdout, or simply as the last paragraph of console noise. The
// extractor never fails; whatever cannot be recovered becomes a warning
// on the result instead.
package extract

import (
	"strings"

	"noesis/internal/core/domain"
	"noesis/internal/core/ports"
	"noesis/internal/platform/logx"
)

// Extractor mines PipelineRun output and Artifact Store files into a
// PipelineResult.
type Extractor struct {
	store      ports.ArtifactReader
	strategies []Strategy
	logger     logx.Logger
}

// Option mutates an Extractor during construction.
type Option func(*Extractor)

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies []Strategy) Option {
	return func(e *Extractor) { e.strategies = strategies }
}

// New creates an Extractor over the given artifact reader.
func New(store ports.ArtifactReader, logger logx.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = logx.New()
	}
	e := &Extractor{
		store:      store,
		strategies: DefaultStrategies(),
		logger:     logger.With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds a PipelineResult for topic from the run's captured
// output and whatever artifacts the pipeline left behind. It always
// returns a result; degradation surfaces in the warnings list.
func (e *Extractor) Extract(run *domain.PipelineRun, topic string) *domain.PipelineResult {
	result := domain.NewPipelineResult(topic)

	e.extractSummary(run, result)
	e.extractStructured(result)
	e.extractImages(result)

	if result.Degraded() {
		e.logger.Warn("extraction degraded",
			"topic", topic,
			"warnings", strings.Join(result.Warnings, "; "),
		)
	}
	return result
}

// extractSummary resolves the summary in priority order: the dedicated
// artifact wins outright, then the stdout strategy chain, first
// non-empty match taking it.
func (e *Extractor) extractSummary(run *domain.PipelineRun, result *domain.PipelineResult) {
	if summary := e.store.ReadSummary(); summary != "" {
		result.Summary = summary
		e.logger.Debug("summary from artifact", "topic", result.Topic)
		return
	}

	var stdout string
	if run != nil {
		stdout = run.Stdout
	}
	cleaned := StripNoise(stdout)

	for _, strategy := range e.strategies {
		if summary, ok := strategy.Extract(cleaned); ok {
			result.Summary = summary
			e.logger.Debug("summary from stdout",
				"topic", result.Topic,
				"strategy", strategy.Name(),
			)
			return
		}
	}

	result.AddWarning("no summary recoverable")
}

func (e *Extractor) extractStructured(result *domain.PipelineResult) {
	records, diag := e.store.ReadStructured()
	if diag != "" {
		result.AddWarning("structured search data unavailable: %s", diag)
		return
	}
	result.SearchResults = records
}

func (e *Extractor) extractImages(result *domain.PipelineResult) {
	images, diag := e.store.ListImages()
	if diag != "" {
		result.AddWarning("image collection degraded: %s", diag)
	}
	result.Images = images
}
