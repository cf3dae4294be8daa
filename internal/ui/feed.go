package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/content"
)

const (
	feedErrorMessage = "Failed to load blogs. Please try again later."
	feedEmptyTitle   = "No blogs yet"
	feedEmptyBody    = "The first AI-generated blog will appear soon!"
	feedLoading      = "Loading amazing content..."
	maxCardTags      = 3
)

// feedState is the home page's fetch lifecycle. A failed fetch shows a fixed
// message and an empty list; there is no automatic retry.
type feedState struct {
	loading  bool
	err      string
	blogs    []blogapi.Blog
	loadedAt time.Time
}

func (f *feedState) begin() {
	f.loading = true
	f.err = ""
}

func (f *feedState) apply(msg feedLoadedMsg) {
	f.loading = false
	f.loadedAt = msg.at
	if msg.err != nil {
		f.err = feedErrorMessage
		f.blogs = nil
		return
	}
	f.err = ""
	f.blogs = msg.blogs
}

// blogItem adapts a blog to list.Item.
type blogItem struct {
	blog    blogapi.Blog
	minutes int
}

func (i blogItem) FilterValue() string {
	return strings.Join(append([]string{i.blog.Title, i.blog.Category}, i.blog.CleanTags()...), " ")
}

func feedItems(blogs []blogapi.Blog) []list.Item {
	items := make([]list.Item, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, blogItem{
			blog:    b,
			minutes: content.ReadingMinutes(content.WordCount(b.Content)),
		})
	}
	return items
}

func newFeedList(theme Theme) list.Model {
	l := list.New(nil, newFeedDelegate(theme), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("article", "articles")
	l.DisableQuitKeybindings()
	return l
}

// feedDelegate renders each blog as a three-line card.
type feedDelegate struct {
	theme Theme
	now   func() time.Time
}

func newFeedDelegate(theme Theme) feedDelegate {
	return feedDelegate{theme: theme, now: time.Now}
}

func (d feedDelegate) Height() int                             { return 3 }
func (d feedDelegate) Spacing() int                            { return 1 }
func (d feedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d feedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bi, ok := item.(blogItem)
	if !ok {
		return
	}
	_, _ = fmt.Fprint(w, d.renderCard(bi, m.Width(), index == m.Index()))
}

func (d feedDelegate) renderCard(bi blogItem, width int, selected bool) string {
	bgColor := d.theme.Background
	if selected {
		bgColor = d.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := d.theme.Styles().WithBackground(bgColor)

	marker := bg.Spaces(2)
	if selected {
		marker = bg.Render("▌", styles.AccentText) + bg.Space()
	}

	blog := bi.blog
	title := strings.TrimSpace(blog.Title)
	if title == "" {
		title = "Untitled"
	}

	first := marker
	if cat := strings.TrimSpace(blog.Category); cat != "" {
		first += styles.ChipStyle(cat).Render(cat) + bg.Space()
		room := width - lipgloss.Width(first)
		first += bg.Render(truncate(title, room), styles.Heading)
	} else {
		first += bg.Render(truncate(title, width-2), styles.Heading)
	}

	meta := make([]string, 0, 3)
	created := blog.ParsedCreatedAt()
	if date := formatShortDate(created); date != "" {
		meta = append(meta, bg.Render(date, styles.MutedText))
		meta = append(meta, bg.Render(relativeTime(created, d.now()), styles.FaintText))
	}
	meta = append(meta, bg.Render(fmt.Sprintf("%d min read", bi.minutes), styles.MutedText))
	second := marker + bg.Join(meta, " · ")

	tags := blog.CleanTags()
	if len(tags) > maxCardTags {
		tags = tags[:maxCardTags]
	}
	third := marker
	for i, tag := range tags {
		if i > 0 {
			third += bg.Space()
		}
		third += bg.Render("#"+tag, styles.InfoText)
	}

	lines := []string{first, second, third}
	for i, line := range lines {
		lines[i] = bg.FillLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) feedReady() bool {
	return !m.feed.loading && m.feed.err == "" && len(m.feed.blogs) > 0
}

func (m *Model) reloadFeed() tea.Cmd {
	m.feed.begin()
	return tea.Batch(m.fetchFeedCmd(), m.spinner.Tick)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadFeed()
	case key.Matches(msg, m.keys.Open):
		if !m.feedReady() {
			return m, nil
		}
		if bi, ok := m.feedList.SelectedItem().(blogItem); ok {
			return m, m.openArticle(bi.blog.ID)
		}
		return m, nil
	}
	if !m.feedReady() {
		return m, nil
	}
	var cmd tea.Cmd
	m.feedList, cmd = m.feedList.Update(msg)
	return m, cmd
}

func (m Model) renderHome(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	width := m.width

	center := func(body string) string {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	}

	switch {
	case m.feed.loading:
		return center(m.spinner.View() + styles.MutedText.Render(" "+feedLoading))
	case m.feed.err != "":
		return center(m.renderTitledBox("Discover Knowledge", styles.DangerText.Render(m.feed.err), min(width, 64), 5, false))
	case len(m.feed.blogs) == 0:
		body := styles.Heading.Render(feedEmptyTitle) + "\n" + styles.MutedText.Render(feedEmptyBody)
		return center(m.renderTitledBox("Discover Knowledge", body, min(width, 64), 6, false))
	}

	bg := NewBgStyle(m.theme.Background)
	hero := bg.FillLine(bg.Spaces(2)+bg.Render("Discover Knowledge", styles.Logo)+bg.Spaces(2)+
		bg.Render("AI-generated articles, fresh content delivered daily", styles.MutedText), width)
	listView := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Padding(0, 2).
		Width(width).
		Height(height - 2).
		Render(m.feedList.View())
	return lipgloss.JoinVertical(lipgloss.Left, hero, bg.FillLine("", width), listView)
}
