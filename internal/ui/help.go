package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay draws the key reference centered on an empty screen.
func (m Model) renderHelpOverlay() string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	width := min(m.width, 52)
	inner := width - 4

	var lines []string
	for i, section := range m.keys.helpSections() {
		if i > 0 {
			lines = append(lines, bg.FillLine("", inner))
		}
		lines = append(lines, bg.FillLine(bg.Space()+bg.Render(section.title, styles.Heading), inner))
		for _, b := range section.bindings {
			h := b.Help()
			row := bg.Spaces(2) + bg.Render(fmt.Sprintf("%-8s", h.Key), styles.AccentText) +
				bg.Render(h.Desc, styles.MutedText)
			lines = append(lines, bg.FillLine(row, inner))
		}
	}
	lines = append(lines, bg.FillLine("", inner),
		bg.FillLine(bg.Space()+bg.Render("? or esc to close", styles.FaintText), inner))

	box := m.renderTitledBox("Keys", strings.Join(lines, "\n"), width, len(lines)+3, true)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
