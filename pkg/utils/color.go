package utils

import (
	"fmt"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

// ColorLines renders one line per color: index, name, hex and how many members hold it
func ColorLines(colors []*palette.Color) []string {
	lines := make([]string, 0, len(colors))
	for i, c := range colors {
		lines = append(lines, fmt.Sprintf("`%d` **%s** %s (%d)\n", i+1, EscapeMarkdown(c.Name), c.Hex, len(c.Members)))
	}
	return lines
}

// ThemeLines renders one line per theme: index, name, color count and description
func ThemeLines(themes []*palette.Theme) []string {
	lines := make([]string, 0, len(themes))
	for i, t := range themes {
		line := fmt.Sprintf("`%d` **%s** (%d colors)", i+1, EscapeMarkdown(t.Name), len(t.Colors))
		if t.Description != "" {
			line += " - " + EscapeMarkdown(t.Description)
		}
		lines = append(lines, line+"\n")
	}
	return lines
}
