// Package ui renders pipeline runs, results, and server diagnostics to
// the terminal. A result with absent fields and a warnings list is a
// normal render, not an error path.
package ui

import (
	"sort"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"noesis/internal/core/domain"
)

const snippetWidth = 80

// PTermPresenter implements ports.Presenter using pterm panels and
// tables.
type PTermPresenter struct {
	mu sync.Mutex
}

// NewPTermPresenter creates the interactive terminal presenter.
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// RunStarted shows the run header.
func (p *PTermPresenter) RunStarted(topic string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("Noesis Research Pipeline")

	pterm.Println()
	pterm.Info.Printfln("Researching: %s", pterm.Cyan(topic))
	pterm.Println()
}

// RunFinished reports the raw outcome of the subprocess before
// extraction runs.
func (p *PTermPresenter) RunFinished(run *domain.PipelineRun) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case run.TimedOut():
		pterm.Warning.Printfln("Pipeline timed out after %s", run.Duration.Round(time.Millisecond))
	case run.Succeeded():
		pterm.Success.Printfln("Pipeline completed in %s", run.Duration.Round(time.Millisecond))
	default:
		pterm.Warning.Printfln("Pipeline exited with code %d after %s",
			run.ExitCode, run.Duration.Round(time.Millisecond))
	}
}

// ShowResult renders the normalized result: summary panel, search
// results table, image list, and whatever warnings extraction gathered.
func (p *PTermPresenter) ShowResult(result *domain.PipelineResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.DefaultSection.Println("Research Result")

	if result.HasSummary() {
		pterm.DefaultBox.
			WithTitle("Summary").
			WithTitleTopCenter().
			WithLeftPadding(2).
			WithRightPadding(2).
			WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
			Println(result.Summary)
	} else {
		pterm.Warning.Println("No summary available")
	}

	if result.HasSearchResults() && len(result.SearchResults) > 0 {
		pterm.Println()
		pterm.DefaultSection.WithLevel(2).Println("Search Results")

		tableData := pterm.TableData{
			{"Title", "URL", "Snippet"},
		}
		for _, rec := range result.SearchResults {
			tableData = append(tableData, []string{
				rec.Title,
				rec.URL,
				truncate(rec.Snippet, snippetWidth),
			})
		}

		pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(tableData).
			Render()
	}

	if len(result.Images) > 0 {
		pterm.Println()
		pterm.DefaultSection.WithLevel(2).Println("Images")
		items := make([]pterm.BulletListItem, 0, len(result.Images))
		for _, img := range result.Images {
			items = append(items, pterm.BulletListItem{Level: 0, Text: img})
		}
		pterm.DefaultBulletList.WithItems(items).Render()
	}

	if len(result.Warnings) > 0 {
		pterm.Println()
		for _, warning := range result.Warnings {
			pterm.Warning.Println(warning)
		}
	}

	pterm.Println()
}

// ShowHealth renders the diagnostics table for every configured server,
// disabled ones included.
func (p *PTermPresenter) ShowHealth(statuses map[string]domain.HealthStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultSection.Println("Tool Server Health")

	tableData := pterm.TableData{
		{"Server", "Status", "Detail", "Checked"},
	}
	for _, name := range sortedKeys(statuses) {
		status := statuses[name]
		tableData = append(tableData, []string{
			name,
			reachabilityLabel(status),
			status.Detail,
			status.LastChecked.Format(time.TimeOnly),
		})
	}

	pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(tableData).
		Render()

	pterm.Println()
}

func reachabilityLabel(status domain.HealthStatus) string {
	if status.Detail == "disabled" {
		return pterm.Gray("disabled")
	}
	if status.Reachable {
		return pterm.Green("reachable")
	}
	return pterm.Red("unreachable")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func sortedKeys(statuses map[string]domain.HealthStatus) []string {
	keys := make([]string, 0, len(statuses))
	for name := range statuses {
		keys = append(keys, name)
	}
	// Stable output so repeated --check runs diff cleanly.
	sort.Strings(keys)
	return keys
}
