// internal/core/domain/result.go
package domain

import "fmt"

// SearchRecord is one entry of the structured search data artifact.
// The wire format carries the snippet under "description"; the pipeline's
// search server writes it that way.
type SearchRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"description"`
}

// PipelineResult is the normalized aggregate built from whichever artifacts
// a completed run produced. Any combination of the three artifact kinds may
// be absent; absence is recorded as a warning, never surfaced as a failure.
// Consumers treat the result as read-only.
type PipelineResult struct {
	// Topic is the research subject of the run
	Topic string

	// Summary is the recovered free-text summary, "" when absent
	Summary string

	// SearchResults is the ordered structured search data, nil when absent
	SearchResults []SearchRecord

	// Images are paths to generated image files, newest first
	Images []string

	// Warnings lists extraction degradations in the order they occurred
	Warnings []string
}

// NewPipelineResult creates an empty result for a topic.
func NewPipelineResult(topic string) *PipelineResult {
	return &PipelineResult{Topic: topic}
}

// AddWarning appends an extraction warning.
func (r *PipelineResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// HasSummary reports whether a summary was recovered.
func (r *PipelineResult) HasSummary() bool {
	return r.Summary != ""
}

// HasSearchResults reports whether structured search data was recovered.
func (r *PipelineResult) HasSearchResults() bool {
	return r.SearchResults != nil
}

// Degraded reports whether extraction recorded any warning.
func (r *PipelineResult) Degraded() bool {
	return len(r.Warnings) > 0
}

// String returns a readable one-line description of the result.
func (r *PipelineResult) String() string {
	return fmt.Sprintf("PipelineResult{topic=%q, summary=%dB, records=%d, images=%d, warnings=%d}",
		r.Topic, len(r.Summary), len(r.SearchResults), len(r.Images), len(r.Warnings))
}
