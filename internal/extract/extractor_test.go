package extract

import (
	"os"
	"strings"
	"testing"

	"noesis/internal/core/domain"
	"noesis/internal/platform/logx"
	"noesis/internal/testutil"
)

func newTestExtractor(t *testing.T, store *testutil.MockArtifactReader, opts ...Option) *Extractor {
	t.Helper()
	return New(store, logx.NewWithWriter(os.Stderr, logx.LevelError), opts...)
}

func TestExtract_NothingRecoverable(t *testing.T) {
	store := &testutil.MockArtifactReader{
		StructuredDiag: "search_results.json not found",
	}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{Topic: "dead topic", ExitCode: 1}
	result := e.Extract(run, "dead topic")

	testutil.AssertEqual(t, result.Topic, "dead topic", "topic")
	testutil.AssertTrue(t, !result.HasSummary(), "no summary")
	testutil.AssertTrue(t, !result.HasSearchResults(), "no search results")
	testutil.AssertEqual(t, len(result.Images), 0, "no images")
	testutil.AssertTrue(t, len(result.Warnings) > 0, "warnings present")
	testutil.AssertTrue(t, result.Degraded(), "result degraded")
}

func TestExtract_NilRun(t *testing.T) {
	store := &testutil.MockArtifactReader{StructuredDiag: "absent"}
	e := newTestExtractor(t, store)

	result := e.Extract(nil, "ghost")
	testutil.AssertTrue(t, !result.HasSummary(), "no summary from nil run")
	testutil.AssertTrue(t, hasWarning(result, "no summary recoverable"), "summary warning")
}

func TestExtract_ArtifactSummaryWins(t *testing.T) {
	store := &testutil.MockArtifactReader{
		Summary: "Curated findings from the report file.",
	}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{
		Topic:  "solar",
		Stdout: "Final Answer: this stdout text must lose to the artifact.",
	}
	result := e.Extract(run, "solar")

	testutil.AssertEqual(t, result.Summary, "Curated findings from the report file.", "artifact takes priority")
}

func TestExtract_FinalResultSection(t *testing.T) {
	store := &testutil.MockArtifactReader{}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{
		Topic: "quantum",
		Stdout: "Agent chatter...\nmore chatter\n\nFINAL RESULT:\n" +
			"Quantum computing enables parallel state exploration.\n",
	}
	result := e.Extract(run, "quantum")

	testutil.AssertEqual(t, result.Summary,
		"Quantum computing enables parallel state exploration.", "final result section")
}

func TestExtract_LabeledAnswer(t *testing.T) {
	store := &testutil.MockArtifactReader{}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{
		Topic: "quantum",
		Stdout: "Working on it...\n\n## Final Answer\n" +
			"Quantum computing enables parallel state exploration.\n",
	}
	result := e.Extract(run, "quantum")

	testutil.AssertEqual(t, result.Summary,
		"Quantum computing enables parallel state exploration.", "labeled answer")
}

func TestExtract_LastParagraphFallback(t *testing.T) {
	store := &testutil.MockArtifactReader{}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{
		Topic: "solar",
		Stdout: "Step 1 done.\n\nSome intermediate reasoning about panels and grids.\n\n" +
			"In conclusion, solar adoption is accelerating.\n\nok\n",
	}
	result := e.Extract(run, "solar")

	testutil.AssertEqual(t, result.Summary,
		"In conclusion, solar adoption is accelerating.", "last substantial paragraph")
}

func TestExtract_StripsTerminalNoise(t *testing.T) {
	store := &testutil.MockArtifactReader{}
	e := newTestExtractor(t, store)

	run := &domain.PipelineRun{
		Topic: "quantum",
		Stdout: "╭──────────────╮\n│ Agent panel  │\n╰──────────────╯\n\n" +
			"\x1b[1;32mFinal Answer:\x1b[0m Quantum computing enables parallel state exploration. 🚀\n",
	}
	result := e.Extract(run, "quantum")

	testutil.AssertEqual(t, result.Summary,
		"Quantum computing enables parallel state exploration.", "noise stripped before matching")
}

func TestExtract_StructuredData(t *testing.T) {
	store := &testutil.MockArtifactReader{
		Summary: "summary",
		Structured: []domain.SearchRecord{
			{Title: "A", URL: "https://a.example", Snippet: "alpha"},
		},
	}
	e := newTestExtractor(t, store)

	result := e.Extract(&domain.PipelineRun{Topic: "t"}, "t")
	testutil.AssertTrue(t, result.HasSearchResults(), "search results present")
	testutil.AssertEqual(t, len(result.SearchResults), 1, "record count")
	testutil.AssertEqual(t, len(result.Warnings), 0, "no warnings")
}

func TestExtract_StructuredFailureIsWarning(t *testing.T) {
	store := &testutil.MockArtifactReader{
		Summary:        "summary",
		StructuredDiag: "search_results.json malformed: unexpected end of input",
	}
	e := newTestExtractor(t, store)

	result := e.Extract(&domain.PipelineRun{Topic: "t"}, "t")
	testutil.AssertTrue(t, !result.HasSearchResults(), "structured absent")
	testutil.AssertTrue(t, hasWarning(result, "structured search data unavailable"), "structured warning")
	testutil.AssertEqual(t, result.Summary, "summary", "summary unaffected")
}

func TestExtract_EmptyImagesNoWarning(t *testing.T) {
	store := &testutil.MockArtifactReader{Summary: "summary"}
	e := newTestExtractor(t, store)

	result := e.Extract(&domain.PipelineRun{Topic: "t"}, "t")
	testutil.AssertEqual(t, len(result.Images), 0, "no images")
	testutil.AssertTrue(t, !hasWarning(result, "image"), "empty image set is not a warning")
}

func TestExtract_ImageDiagIsWarning(t *testing.T) {
	store := &testutil.MockArtifactReader{
		Summary:    "summary",
		Images:     []string{"images/ok.png"},
		ImagesDiag: "skipped unreadable images: broken.png",
	}
	e := newTestExtractor(t, store)

	result := e.Extract(&domain.PipelineRun{Topic: "t"}, "t")
	testutil.AssertEqual(t, len(result.Images), 1, "readable subset kept")
	testutil.AssertTrue(t, hasWarning(result, "image collection degraded"), "image warning")
}

func TestExtract_CustomStrategies(t *testing.T) {
	store := &testutil.MockArtifactReader{}
	only := []Strategy{FinalSection{Marker: "VERDICT"}}
	e := newTestExtractor(t, store, WithStrategies(only))

	run := &domain.PipelineRun{
		Topic:  "t",
		Stdout: "Final Answer: ignored by the custom chain.\n\nVERDICT: custom marker wins.",
	}
	result := e.Extract(run, "t")
	testutil.AssertEqual(t, result.Summary, "custom marker wins.", "custom chain")
}

func hasWarning(result *domain.PipelineResult, substr string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
