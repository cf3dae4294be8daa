package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/content"
	"github.com/five82/knowledgehub/internal/reading"
)

const (
	articleNotFoundTitle = "Article Not Found"
	articleErrorMessage  = "Blog not found"
	articleLoading       = "Loading article..."
)

// articleState is the reader's fetch lifecycle for one blog id.
type articleState struct {
	id      string
	loading bool
	err     string
	blog    blogapi.Blog
	blocks  []content.Block
	words   int
}

func (a *articleState) apply(msg articleLoadedMsg) {
	a.loading = false
	if msg.err != nil {
		a.err = articleErrorMessage
		a.blog = blogapi.Blog{}
		a.blocks = nil
		a.words = 0
		return
	}
	a.err = ""
	a.blog = msg.blog
	a.blocks = content.Parse(msg.blog.Content)
	a.words = content.WordCount(msg.blog.Content)
}

func (a articleState) loaded() bool {
	return a.id != "" && !a.loading && a.err == ""
}

func (m *Model) openArticle(id string) tea.Cmd {
	m.tracker.Stop()
	m.article = articleState{id: id, loading: true}
	m.articleView.SetContent("")
	m.articleView.GotoTop()
	m.currentView = ViewArticle
	return tea.Batch(m.fetchArticleCmd(id), m.spinner.Tick)
}

// closeArticle tears down the reader and resets the shared progress value.
func (m *Model) closeArticle() {
	if m.article.id == "" {
		return
	}
	m.tracker.Stop()
	m.article = articleState{}
	m.articleView.SetContent("")
}

// articleRect maps the viewport onto the article's bounding box: one row is
// one unit, and the box top moves up as the reader scrolls down.
func (m Model) articleRect() reading.Rect {
	return reading.Rect{
		Top:    -float64(m.articleView.YOffset),
		Height: float64(m.articleView.TotalLineCount()),
	}
}

// scrollTopVisible reports whether the "back to top" hint should show.
func (m Model) scrollTopVisible() bool {
	return reading.ScrollTopVisible(reading.RowsToUnits(m.articleView.YOffset), reading.DefaultScrollTopThreshold)
}

func (m Model) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeArticle()
		m.currentView = ViewHome
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.article.id == "" {
			return m, nil
		}
		return m, m.openArticle(m.article.id)
	case key.Matches(msg, m.keys.Share):
		m.shareArticle()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		if !m.article.loaded() {
			return m, nil
		}
		m.articleView.GotoTop()
		return m, m.tracker.Scroll(m.articleRect())
	}
	if !m.article.loaded() {
		return m, nil
	}
	return m.updateArticleViewport(msg)
}

func (m Model) updateArticleViewport(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.articleView.YOffset
	var cmd tea.Cmd
	m.articleView, cmd = m.articleView.Update(msg)
	if m.articleView.YOffset != before {
		return m, tea.Batch(cmd, m.tracker.Scroll(m.articleRect()))
	}
	return m, cmd
}

func (m *Model) shareArticle() {
	if !m.article.loaded() {
		return
	}
	link := m.opts.Config.ArticleURL(m.article.id)
	if err := writeClipboard(link); err != nil {
		m.setNotice("Copy failed, link: " + link)
		return
	}
	m.setNotice(linkCopiedNotice)
}

func (m Model) renderArticle(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	center := func(body string) string {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	}

	switch {
	case m.article.loading:
		return center(m.spinner.View() + styles.MutedText.Render(" "+articleLoading))
	case m.article.err != "":
		body := styles.Heading.Render(articleNotFoundTitle) + "\n\n" +
			styles.MutedText.Render(m.article.err) + "\n\n" +
			styles.AccentText.Render("esc") + styles.MutedText.Render(" Back to Home")
		return center(body)
	}

	bg := NewBgStyle(m.theme.Background)
	percent := m.progressCell.Load()
	bar := bg.Spaces(2) + m.progressBar.ViewAs(percent/100) + bg.Space() +
		bg.Render(fmt.Sprintf("%3.0f%%", percent), styles.MutedText)
	if m.scrollTopVisible() {
		bar += bg.Spaces(2) + bg.Render("↑", styles.AccentText) + bg.Space() +
			bg.Render("t top", styles.FaintText)
	}

	body := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Padding(0, 2).
		Width(m.width).
		Height(max(height-2, 1)).
		Render(m.articleView.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		bg.FillLine(bar, m.width),
		bg.FillLine("", m.width),
		body,
	)
}

// renderArticleBody lays out the whole article for the viewport.
func (m Model) renderArticleBody(width int) string {
	if width <= 0 {
		width = 80
	}
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	blog := m.article.blog

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }
	blank := func() { add("") }

	add(bg.Render("← esc", styles.FaintText) + bg.Space() + bg.Render("Back to articles", styles.MutedText))
	blank()
	if cat := strings.TrimSpace(blog.Category); cat != "" {
		add(styles.ChipStyle(cat).Render(cat))
		blank()
	}
	title := strings.TrimSpace(blog.Title)
	if title == "" {
		title = "Untitled"
	}
	for _, l := range wrapText(title, width) {
		add(bg.Render(l, styles.Logo))
	}
	blank()

	meta := make([]string, 0, 4)
	if date := formatLongDate(blog.ParsedCreatedAt()); date != "" {
		meta = append(meta, bg.Render(date, styles.MutedText))
	}
	meta = append(meta,
		bg.Render(formatWords(m.article.words), styles.MutedText),
		bg.Render(fmt.Sprintf("%d min read", content.ReadingMinutes(m.article.words)), styles.MutedText),
		bg.Render("s", styles.AccentText)+bg.Space()+bg.Render("Share", styles.FaintText),
	)
	add(bg.Join(meta, " · "))
	add(bg.Render(strings.Repeat("─", width), styles.FaintText))

	for _, block := range m.article.blocks {
		switch block.Kind {
		case content.Heading2:
			blank()
			for _, l := range wrapText(block.Text, width) {
				add(bg.Render(l, styles.AccentText.Bold(true)))
			}
			blank()
		case content.Heading3:
			blank()
			for _, l := range wrapText(block.Text, width) {
				add(bg.Render(l, styles.Heading))
			}
		default:
			for _, l := range wrapText(block.Text, width) {
				add(bg.Render(l, styles.Text))
			}
			blank()
		}
	}

	if tags := blog.CleanTags(); len(tags) > 0 {
		add(bg.Render(strings.Repeat("─", width), styles.FaintText))
		add(bg.Render("Tags", styles.Heading))
		line, lineWidth := "", 0
		for _, tag := range tags {
			chip := "#" + tag
			w := lipgloss.Width(chip)
			if lineWidth > 0 && lineWidth+2+w > width {
				add(line)
				line, lineWidth = "", 0
			}
			if lineWidth > 0 {
				line += bg.Spaces(2)
				lineWidth += 2
			}
			line += bg.Render(chip, styles.InfoText)
			lineWidth += w
		}
		add(line)
	}
	return strings.Join(lines, "\n")
}
