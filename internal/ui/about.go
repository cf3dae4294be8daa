package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type aboutFeature struct {
	title string
	desc  string
}

var aboutTechStack = []string{"React", "FastAPI", "MongoDB", "LangGraph", "Groq", "Python", "Tailwind CSS"}

func (m Model) aboutFeatures() []aboutFeature {
	return []aboutFeature{
		{"AI-Powered", "Content generated using advanced LangGraph workflows and Groq LLM"},
		{"Automated", "New blog posts generated automatically every day at " + m.opts.Window.String()},
		{"Modern Stack", "Built with React, FastAPI, MongoDB, and Python"},
		{"Quality Content", "Well-researched, structured articles on trending tech topics"},
	}
}

func (m Model) renderAbout(height int) string {
	bgColor := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	width := min(m.width, 88)
	inner := width - 4

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(bg.Space()+s, inner)) }
	para := func(text string, style lipgloss.Style) {
		for _, l := range wrapText(text, inner-2) {
			add(bg.Render(l, style))
		}
	}

	add(bg.Render("An automated blog generation system powered by AI", styles.MutedText))
	add("")
	add(bg.Render("The Vision", styles.Heading))
	para("Every post here is generated entirely by AI, from topic selection to image creation, "+
		"with zero human intervention.", styles.Text)
	para("A multi-step workflow generates trending topics, crafts titles, writes the content "+
		"and creates a matching thumbnail, all automatically.", styles.Text)
	add("")
	for _, f := range m.aboutFeatures() {
		add(bg.Render("◆ ", styles.InfoText) + bg.Render(f.title, styles.Heading))
		for _, l := range wrapText(f.desc, inner-4) {
			add(bg.Spaces(2) + bg.Render(l, styles.MutedText))
		}
	}
	add("")
	add(bg.Render("Tech Stack", styles.Heading))
	chips := make([]string, 0, len(aboutTechStack))
	for _, tech := range aboutTechStack {
		chips = append(chips, bg.Render(tech, styles.AccentText))
	}
	add(bg.Join(chips, " · "))

	box := m.renderTitledBox("About This Project", strings.Join(lines, "\n"), width, min(height, len(lines)+3), false)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Top, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
