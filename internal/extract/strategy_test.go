package extract

import (
	"testing"

	"noesis/internal/testutil"
)

func TestFinalSection(t *testing.T) {
	s := FinalSection{Marker: "FINAL RESULT"}

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"with colon", "noise\nFINAL RESULT: the answer", "the answer", true},
		{"without colon", "FINAL RESULT\nthe answer", "the answer", true},
		{"last occurrence wins", "FINAL RESULT: draft\nFINAL RESULT: final", "final", true},
		{"marker with nothing after", "FINAL RESULT:\n   ", "", false},
		{"no marker", "just chatter", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Extract(tt.in)
			testutil.AssertEqual(t, ok, tt.ok, "match")
			testutil.AssertEqual(t, got, tt.want, "extracted text")
		})
	}
}

func TestLabeledAnswer(t *testing.T) {
	s := LabeledAnswer{}

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"inline label", "Final Answer: short and sweet", "short and sweet", true},
		{"markdown heading", "## Final Answer\nbody text", "body text", true},
		{"case insensitive", "FINAL ANSWER: loud body", "loud body", true},
		{"last label wins", "Final Answer: first\nFinal Answer: second", "second", true},
		{"mid-line mention ignored", "we await the Final Answer eagerly", "", false},
		{"no label", "nothing here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Extract(tt.in)
			testutil.AssertEqual(t, ok, tt.ok, "match")
			testutil.AssertEqual(t, got, tt.want, "extracted text")
		})
	}
}

func TestLastParagraph(t *testing.T) {
	s := LastParagraph{MinLineLen: 30}

	long := "This sentence is comfortably longer than thirty characters."
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"single paragraph", long, long, true},
		{"skips short trailer", long + "\n\nok", long, true},
		{"all short", "ok\n\nfine\n\ndone", "", false},
		{"empty", "", "", false},
		{"multiline paragraph", "short\n" + long + "\nshort", "short\n" + long + "\nshort", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Extract(tt.in)
			testutil.AssertEqual(t, ok, tt.ok, "match")
			testutil.AssertEqual(t, got, tt.want, "extracted text")
		})
	}
}

func TestStripNoise(t *testing.T) {
	in := "╔════╗\n║ \x1b[1mAgents\x1b[0m ✨ ║\n╚════╝\nplain text survives"
	out := StripNoise(in)

	testutil.AssertTrue(t, !containsAny(out, boxRunes), "box runes removed")
	testutil.AssertTrue(t, !containsAny(out, "\x1b"), "ansi removed")
	testutil.AssertTrue(t, !containsAny(out, "✨"), "emoji removed")
	testutil.AssertTrue(t, containsAny(out, "p"), "content kept")
}

func containsAny(s, chars string) bool {
	for _, r := range chars {
		for _, c := range s {
			if c == r {
				return true
			}
		}
	}
	return false
}
