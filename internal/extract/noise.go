package extract

import (
	"regexp"
	"strings"
)

// ansiRe matches SGR escape sequences left behind by terminal renderers.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// boxRunes are the drawing characters agent frameworks use for console
// panels. They carry no summary content.
const boxRunes = "╭╮│╰╯═─└├┤┬┴┼╔╗╚╝║╠╣╦╩╬▓▒░"

// StripNoise removes terminal decoration from captured pipeline output:
// ANSI color codes, box-drawing panels, and emoji glyphs. Line structure
// is preserved so paragraph detection still works afterwards.
func StripNoise(text string) string {
	if text == "" {
		return ""
	}

	text = ansiRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(boxRunes, r) || isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}

	// Decoration-only lines collapse to whitespace; trim each line so
	// they read as blank separators rather than phantom paragraphs.
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r == 0xFE0F: // variation selector
		return true
	}
	return false
}
