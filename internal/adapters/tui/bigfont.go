package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// digitMap holds the five rows of each block glyph.
var digitMap = map[rune][5]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
}

// bigClock renders an MM:SS countdown in five-line block digits. Narrow
// terminals get a single bold line instead.
func bigClock(remaining time.Duration, color lipgloss.Color, width int) string {
	text := formatDuration(remaining)
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < 40 {
		return style.Render(text)
	}

	var rows [5][]string
	for _, ch := range text {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], glyph[i])
		}
	}

	lines := make([]string, len(rows))
	for i, parts := range rows {
		lines[i] = style.Render(strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
