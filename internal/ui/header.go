package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, the navigation tabs and the trigger badge.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("KnowledgeHub", styles.Logo)}

	active := m.currentView
	if active == ViewArticle {
		active = ViewHome
	}
	tabs := make([]string, 0, 3)
	for _, v := range []View{ViewHome, ViewAbout, ViewAdmin} {
		label := " " + v.String() + " "
		if v == active {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, bg.Render(label, styles.MutedText))
		}
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	if badge := m.triggerBadge(styles, bg); badge != "" {
		parts = append(parts, badge)
	}

	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, 60), styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// triggerBadge summarizes the scheduler and the most recent run.
func (m Model) triggerBadge(styles Styles, bg BgStyle) string {
	compact := m.width < 100

	var badge string
	if m.opts.Scheduled {
		badge = bg.Render("●", styles.SuccessText) + bg.Space() + bg.Render(m.opts.Window.String(), styles.Text)
		if !compact {
			if next, err := m.opts.Window.Next(m.now); err == nil {
				badge += bg.Space() + bg.Render(relativeTime(next, m.now), styles.FaintText)
			}
		}
	} else {
		badge = bg.Render("○ trigger off", styles.FaintText)
	}

	snap := m.snapshot
	if !snap.HasLast {
		return badge
	}
	if snap.LastFailed() {
		return badge + dot(bg) + bg.Render("LAST RUN FAILED", styles.DangerText)
	}
	if compact {
		return badge + dot(bg) + bg.Render("last ok", styles.SuccessText)
	}
	return badge + dot(bg) + bg.Render("last ok", styles.SuccessText) + bg.Space() +
		bg.Render(relativeTime(snap.Last.At, m.now), styles.FaintText)
}

func dot(bg BgStyle) string {
	return bg.Sep(" · ")
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewArticle:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"t", "Top"},
			{"s", "Share"},
			{"r", "Reload"},
			{"esc", "Back"},
		}
	case ViewAdmin:
		switch {
		case m.secretInput.Focused():
			commands = []cmd{{"enter", "Unlock"}, {"esc", "Back"}}
		case m.session.Authorized:
			commands = []cmd{{"g", "Generate"}, {"L", "Lock"}, {"r", "Refresh"}, {"esc", "Back"}}
		default:
			commands = []cmd{{"esc", "Back"}}
		}
	case ViewAbout:
		commands = []cmd{{"1", "Home"}, {"3", "Admin"}}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Read"},
			{"/", "Filter"},
			{"r", "Reload"},
			{"2", "About"},
			{"3", "Admin"},
		}
	}
	commands = append(commands, cmd{"?", "More"}, cmd{"q", "Quit"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderTitledBox draws a rounded box with a title line. width and height
// include the border.
func (m Model) renderTitledBox(title, body string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	inner := max(width-2, 1)
	titleLine := bg.FillLine(bg.Space()+bg.Render(title, styles.AccentText.Bold(true)), inner)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Width(inner).
		Height(max(height-2, 1)).
		Render(titleLine + "\n" + body)
}
