// Package textutil makes file names and file contents safe to put on a
// terminal grid.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Formatting runes are shown by name so that a file name cannot reorder or
// hide the text around it.
var formattingLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters with '?', line breaks
// and tabs with a space, and labels bidi formatting runes.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if unsafeRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := formattingLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unsafeRune(r rune) bool {
	if _, ok := formattingLabels[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	col := 0
	for _, r := range text {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += max(runewidth.RuneWidth(r), 1)
	}
	return b.String()
}

// PaneText prepares one line of file content for display.
func PaneText(line string, tabWidth int) string {
	return SanitizeTerminalText(ExpandTabs(line, tabWidth))
}

// DisplayWidth is the number of terminal columns text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Fit truncates text to width columns, marking the cut with '~', and pads
// it with spaces to exactly width.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) > width {
		text = runewidth.Truncate(text, width, "~")
	}
	return runewidth.FillRight(text, width)
}
