package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"noesis/internal/core/domain"
)

// RawPresenter implements ports.Presenter as plain logfmt lines with no
// terminal decoration. Used for quiet mode and piped output.
type RawPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRawPresenter creates a presenter writing to out.
func NewRawPresenter(out io.Writer) *RawPresenter {
	return &RawPresenter{out: out}
}

func (r *RawPresenter) log(message string, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := append([]string{time.Now().UTC().Format(time.RFC3339), message}, fields...)
	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

func (r *RawPresenter) RunStarted(topic string) {
	r.log("run started", "topic="+quote(topic))
}

func (r *RawPresenter) RunFinished(run *domain.PipelineRun) {
	r.log("run finished",
		"topic="+quote(run.Topic),
		fmt.Sprintf("exit_code=%d", run.ExitCode),
		"duration="+run.Duration.Round(time.Millisecond).String(),
	)
}

func (r *RawPresenter) ShowResult(result *domain.PipelineResult) {
	r.log("result",
		"topic="+quote(result.Topic),
		fmt.Sprintf("summary=%t", result.HasSummary()),
		fmt.Sprintf("search_results=%d", len(result.SearchResults)),
		fmt.Sprintf("images=%d", len(result.Images)),
		fmt.Sprintf("warnings=%d", len(result.Warnings)),
	)
	if result.HasSummary() {
		fmt.Fprintln(r.out, result.Summary)
	}
	for _, rec := range result.SearchResults {
		r.log("search result", "title="+quote(rec.Title), "url="+rec.URL)
	}
	for _, img := range result.Images {
		r.log("image", "path="+quote(img))
	}
	for _, warning := range result.Warnings {
		r.log("warning", "detail="+quote(warning))
	}
}

func (r *RawPresenter) ShowHealth(statuses map[string]domain.HealthStatus) {
	for _, name := range sortedKeys(statuses) {
		status := statuses[name]
		r.log("server health",
			"server="+name,
			fmt.Sprintf("reachable=%t", status.Reachable),
			"detail="+quote(status.Detail),
		)
	}
}

// quote wraps values containing spaces so the logfmt output stays
// parseable.
func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
