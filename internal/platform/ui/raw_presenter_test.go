package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"noesis/internal/core/domain"
	"noesis/internal/testutil"
)

func TestRawPresenter_Result(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf)

	result := domain.NewPipelineResult("quantum computing")
	result.Summary = "Qubits exist in superposition."
	result.SearchResults = []domain.SearchRecord{
		{Title: "Qubit basics", URL: "https://example.com/q", Snippet: "intro"},
	}
	result.Images = []string{"images/bloch sphere.png"}
	result.AddWarning("image collection degraded: one skipped")

	p.ShowResult(result)
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, `topic="quantum computing"`), "topic quoted")
	testutil.AssertTrue(t, strings.Contains(out, "Qubits exist in superposition."), "summary printed")
	testutil.AssertTrue(t, strings.Contains(out, "url=https://example.com/q"), "search result line")
	testutil.AssertTrue(t, strings.Contains(out, `path="images/bloch sphere.png"`), "image path quoted")
	testutil.AssertTrue(t, strings.Contains(out, "warnings=1"), "warning count")
}

func TestRawPresenter_DegradedResultStillRenders(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf)

	result := domain.NewPipelineResult("dead topic")
	result.AddWarning("no summary recoverable")

	p.ShowResult(result)
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, "summary=false"), "absent summary rendered")
	testutil.AssertTrue(t, strings.Contains(out, "no summary recoverable"), "warning rendered")
}

func TestRawPresenter_RunLifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf)

	p.RunStarted("solar")
	p.RunFinished(&domain.PipelineRun{
		Topic:    "solar",
		ExitCode: domain.TimeoutExitCode,
		Duration: 300 * time.Second,
	})
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, "run started topic=solar"), "start line")
	testutil.AssertTrue(t, strings.Contains(out, "exit_code=-2"), "timeout exit code")
}

func TestRawPresenter_Health(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf)

	p.ShowHealth(map[string]domain.HealthStatus{
		"search":     {Server: "search", Reachable: true, Detail: "tools: search_web"},
		"filesystem": {Server: "filesystem", Reachable: false, Detail: "disabled"},
	})
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	testutil.AssertEqual(t, len(lines), 2, "one line per server")
	// Sorted output: filesystem before search.
	testutil.AssertTrue(t, strings.Contains(lines[0], "server=filesystem"), "sorted order")
	testutil.AssertTrue(t, strings.Contains(lines[1], "reachable=true"), "reachable flag")
}
