package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/knowledgehub/internal/admin"
	"github.com/five82/knowledgehub/internal/logtail"
)

// openAdmin shows the panel and focuses the secret input while locked.
func (m *Model) openAdmin() tea.Cmd {
	m.currentView = ViewAdmin
	m.activity = readActivity(m.opts.Config.LogFile)
	if m.session.Authorized {
		return nil
	}
	return m.secretInput.Focus()
}

func (m Model) handleSecretKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.session.Entered = m.secretInput.Value()
		m.secretInput.Reset()
		if m.session.Submit(m.opts.Config.AdminSecret) {
			m.secretInput.Blur()
		}
		return m, nil
	case tea.KeyEsc:
		m.secretInput.Blur()
		m.secretInput.Reset()
		m.currentView = ViewHome
		return m, nil
	}
	var cmd tea.Cmd
	m.secretInput, cmd = m.secretInput.Update(msg)
	return m, cmd
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewHome
		return m, nil
	case key.Matches(msg, m.keys.Generate):
		if !m.session.BeginGenerate() {
			return m, nil
		}
		return m, tea.Batch(m.generateCmd(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Lock):
		m.session.Lock()
		return m, m.secretInput.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.refreshActivity()
		return m, nil
	}
	return m, nil
}

func readActivity(path string) []string {
	lines, err := logtail.ReadMatching(path, activityLines, activityFilter)
	if err != nil {
		log.Printf("read activity: %v", err)
		return nil
	}
	return lines
}

func (m Model) renderAdmin(height int) string {
	bgColor := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	width := min(m.width, 96)
	inner := width - 4

	var b strings.Builder
	line := func(s string) {
		b.WriteString(bg.FillLine(bg.Space()+s, inner))
		b.WriteString("\n")
	}

	line(bg.Render("Manual Generation", styles.Heading))
	switch {
	case !m.session.Authorized:
		if !m.opts.Config.HasAdminSecret() {
			line(bg.Render("No admin secret configured; set admin_secret or KNOWLEDGEHUB_ADMIN_SECRET.", styles.WarningText))
		}
		line(m.secretInput.View())
		line(bg.Render("enter", styles.AccentText) + bg.Space() + bg.Render("Unlock", styles.MutedText))
	case m.session.Busy:
		line(m.spinner.View() + bg.Space() + bg.Render("Request in flight", styles.MutedText))
	default:
		line(bg.Render("g", styles.AccentText) + bg.Space() + bg.Render("Generate blog now", styles.MutedText) +
			bg.Spaces(3) + bg.Render("L", styles.AccentText) + bg.Space() + bg.Render("Lock", styles.MutedText))
	}
	if m.session.Message != "" {
		line(bg.Render(m.session.Message, m.outcomeStyle(styles, m.session.Outcome)))
	}

	line("")
	line(bg.Render("Schedule", styles.Heading))
	for _, row := range m.scheduleRows(styles, bg) {
		line(row)
	}

	line("")
	line(bg.Render("Recent activity", styles.Heading))
	if len(m.activity) == 0 {
		line(bg.Render("Nothing logged yet", styles.FaintText))
	}
	for _, entry := range m.activity {
		style := styles.MutedText
		if strings.Contains(entry, "error generating blog") {
			style = styles.DangerText
		}
		line(bg.Render(truncate(entry, inner-2), style))
	}
	if m.opts.Config.LogFile != "" {
		line(bg.Render("log", styles.FaintText) + bg.Space() +
			bg.Render(truncateMiddle(m.opts.Config.LogFile, inner-6), styles.FaintText))
	}

	box := m.renderTitledBox("Admin", strings.TrimRight(b.String(), "\n"), width, min(height, strings.Count(b.String(), "\n")+3), true)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Top, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

func (m Model) scheduleRows(styles Styles, bg BgStyle) []string {
	label := func(s string) string { return bg.Render(fmt.Sprintf("%-10s", s), styles.FaintText) }

	state := bg.Render("off", styles.MutedText)
	if m.opts.Scheduled {
		state = bg.Render("running", styles.SuccessText)
	}
	rows := []string{
		label("Window") + bg.Render(m.opts.Window.String(), styles.Text),
		label("Scheduler") + state,
	}
	if next, err := m.opts.Window.Next(m.now); err == nil {
		rows = append(rows, label("Next")+
			bg.Render(next.Format("Mon Jan 2 15:04 MST"), styles.Text)+bg.Space()+
			bg.Render("("+relativeTime(next, m.now)+")", styles.FaintText))
	}

	snap := m.snapshot
	rows = append(rows, label("Runs")+
		bg.Render(fmt.Sprintf("%d ok", snap.Fires), styles.SuccessText)+bg.Spaces(2)+
		bg.Render(fmt.Sprintf("%d failed", snap.Failures), m.failureStyle(styles, snap.Failures)))
	if snap.HasLast {
		outcome := bg.Render("ok", styles.SuccessText)
		if snap.LastFailed() {
			outcome = bg.Render(truncate(snap.Last.Err.Error(), 48), styles.DangerText)
		}
		rows = append(rows, label("Last run")+
			bg.Render(snap.Last.Source, styles.Text)+bg.Space()+
			bg.Render(relativeTime(snap.Last.At, m.now), styles.FaintText)+bg.Spaces(2)+outcome)
	}
	return rows
}

func (m Model) outcomeStyle(styles Styles, outcome admin.Outcome) lipgloss.Style {
	switch outcome {
	case admin.OutcomeOK:
		return styles.SuccessText
	case admin.OutcomeError:
		return styles.DangerText
	case admin.OutcomePending:
		return styles.WarningText
	default:
		return styles.MutedText
	}
}

func (m Model) failureStyle(styles Styles, failures int) lipgloss.Style {
	if failures > 0 {
		return styles.DangerText
	}
	return styles.MutedText
}
