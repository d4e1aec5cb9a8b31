package extract

import (
	"regexp"
	"strings"
)

// Strategy recovers a summary from raw pipeline output. Implementations
// are pure: same text in, same answer out.
type Strategy interface {
	// Name identifies the strategy in logs and diagnostics.
	Name() string
	// Extract returns the recovered summary and true, or "" and false
	// when the text carries no match for this convention.
	Extract(text string) (string, bool)
}

// DefaultStrategies returns the standard chain in priority order: a
// delimited final-result section, a labeled final answer, then the last
// substantial paragraph as a catch-all.
func DefaultStrategies() []Strategy {
	return []Strategy{
		FinalSection{Marker: "FINAL RESULT"},
		LabeledAnswer{},
		LastParagraph{MinLineLen: 30},
	}
}

// FinalSection extracts everything after the last occurrence of a
// section marker such as "FINAL RESULT:".
type FinalSection struct {
	Marker string
}

func (FinalSection) Name() string { return "final-section" }

func (f FinalSection) Extract(text string) (string, bool) {
	idx := strings.LastIndex(text, f.Marker)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(f.Marker):]
	rest = strings.TrimLeft(rest, ":")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// labeledAnswerRe matches a "Final Answer" label, bare or as a markdown
// heading, with an optional trailing colon.
var labeledAnswerRe = regexp.MustCompile(`(?im)^\s*(?:#+\s*)?final answer:?\s*`)

// LabeledAnswer extracts the text following the last "Final Answer"
// label in the output.
type LabeledAnswer struct{}

func (LabeledAnswer) Name() string { return "labeled-answer" }

func (LabeledAnswer) Extract(text string) (string, bool) {
	matches := labeledAnswerRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	last := matches[len(matches)-1]
	rest := strings.TrimSpace(text[last[1]:])
	if rest == "" {
		return "", false
	}
	return rest, true
}

// LastParagraph falls back to the final paragraph of the output that
// contains at least one line longer than MinLineLen. Short trailing
// fragments such as timing lines or exit banners are skipped.
type LastParagraph struct {
	MinLineLen int
}

func (LastParagraph) Name() string { return "last-paragraph" }

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

func (l LastParagraph) Extract(text string) (string, bool) {
	paragraphs := paragraphSplitRe.Split(text, -1)
	for i := len(paragraphs) - 1; i >= 0; i-- {
		para := strings.TrimSpace(paragraphs[i])
		if para == "" {
			continue
		}
		if l.substantial(para) {
			return para, true
		}
	}
	return "", false
}

func (l LastParagraph) substantial(para string) bool {
	for _, line := range strings.Split(para, "\n") {
		if len(strings.TrimSpace(line)) > l.MinLineLen {
			return true
		}
	}
	return false
}
