package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// palette maps core.Color entries to lipgloss styles.
var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorText:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorDoor:        lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorPellet:      lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorPowerPellet: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorShadow:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorSpeedy:      lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorBashful:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorPokey:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorFrightened:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorFlash:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorEyes:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells sharing a palette entry are rendered as one run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := palette[c]; ok {
		return style
	}
	return palette[core.ColorDefault]
}
