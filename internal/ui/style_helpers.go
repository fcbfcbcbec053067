package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar paints header and footer segments on a shared background. lipgloss
// resets the background after every styled run, so spaces between segments
// must be painted too or the bar shows gaps.
type bar struct {
	bg    lipgloss.Color
	space string
}

func newBar(bgColor string) bar {
	bg := lipgloss.Color(bgColor)
	return bar{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// Render styles text word by word so inner spaces keep the background.
func (b bar) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Spaces returns n painted spaces.
func (b bar) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(b.space, n)
}

// Join joins non-empty parts with painted padding.
func (b bar) Join(parts []string, gap int) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.Spaces(gap))
}

// Fill pads content to width with the background.
func (b bar) Fill(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).MaxHeight(1).Render(content)
}
