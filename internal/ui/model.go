package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/knowledgehub/internal/admin"
	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/config"
	"github.com/five82/knowledgehub/internal/reading"
	"github.com/five82/knowledgehub/internal/state"
	"github.com/five82/knowledgehub/internal/trigger"
)

// View identifies the page on screen.
type View int

const (
	ViewHome View = iota
	ViewArticle
	ViewAbout
	ViewAdmin
)

func (v View) String() string {
	switch v {
	case ViewArticle:
		return "Article"
	case ViewAbout:
		return "About"
	case ViewAdmin:
		return "Admin"
	default:
		return "Home"
	}
}

const (
	refreshInterval  = time.Second
	fetchTimeout     = 30 * time.Second
	noticeLifetime   = 4 * time.Second
	activityLines    = 6
	activityFilter   = "generate "
	linkCopiedNotice = "Link copied to clipboard!"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Options wires the UI to the rest of the client.
type Options struct {
	Config    config.Config
	Fetcher   blogapi.Fetcher
	Generator blogapi.Generator
	Store     *state.Store
	Window    trigger.Window
	// Scheduled reports whether the trigger scheduler runs in this process.
	Scheduled bool
}

// Model is the Bubble Tea model for the whole client.
type Model struct {
	ctx  context.Context
	opts Options
	keys keyMap

	width       int
	height      int
	currentView View
	showHelp    bool
	theme       Theme
	now         time.Time

	spinner spinner.Model

	feed     feedState
	feedList list.Model

	article      articleState
	articleView  viewport.Model
	progressBar  progress.Model
	progressCell *reading.Cell
	tracker      *reading.Tracker

	session     admin.Session
	secretInput textinput.Model
	activity    []string
	snapshot    state.Snapshot

	notice   string
	noticeAt time.Time
}

// Messages

type tickMsg time.Time

type feedLoadedMsg struct {
	blogs []blogapi.Blog
	err   error
	at    time.Time
}

type articleLoadedMsg struct {
	id   string
	blog blogapi.Blog
	err  error
}

type generateDoneMsg struct {
	resp blogapi.GenerateResponse
	err  error
}

// New builds the initial model. The feed starts loading on Init.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	theme := GetTheme(opts.Config.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "Enter admin secret"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 256

	cell := &reading.Cell{}
	m := Model{
		ctx:          ctx,
		opts:         opts,
		keys:         defaultKeys(),
		theme:        theme,
		now:          time.Now(),
		spinner:      sp,
		feed:         feedState{loading: true},
		feedList:     newFeedList(theme),
		articleView:  viewport.New(0, 0),
		progressCell: cell,
		tracker:      reading.NewTracker(cell),
		secretInput:  input,
	}
	m.applyTheme()
	return m
}

// Init starts the first fetch, the spinner and the refresh tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchFeedCmd(), m.spinner.Tick, tickCmd())
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.refreshActivity()
		if m.notice != "" && m.now.Sub(m.noticeAt) > noticeLifetime {
			m.notice = ""
		}
		return m, tickCmd()

	case feedLoadedMsg:
		m.feed.apply(msg)
		return m, m.feedList.SetItems(feedItems(m.feed.blogs))

	case articleLoadedMsg:
		if msg.id != m.article.id {
			return m, nil
		}
		m.article.apply(msg)
		m.articleView.SetContent(m.renderArticleBody(m.articleView.Width))
		m.articleView.GotoTop()
		return m, m.tracker.Scroll(m.articleRect())

	case generateDoneMsg:
		m.session.FinishGenerate(msg.resp, msg.err)
		m.refreshActivity()
		if msg.err == nil {
			return m, m.reloadFeed()
		}
		return m, nil

	case reading.FrameMsg:
		m.tracker.Frame(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.currentView == ViewArticle {
			return m.updateArticleViewport(msg)
		}
		if m.currentView == ViewHome && m.feedReady() {
			var cmd tea.Cmd
			m.feedList, cmd = m.feedList.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	cmdBar := m.renderCommandBar()
	bodyHeight := m.bodyHeight()

	var body string
	switch m.currentView {
	case ViewArticle:
		body = m.renderArticle(bodyHeight)
	case ViewAbout:
		body = m.renderAbout(bodyHeight)
	case ViewAdmin:
		body = m.renderAdmin(bodyHeight)
	default:
		body = m.renderHome(bodyHeight)
	}

	page := lipgloss.JoinVertical(lipgloss.Left, header, body, cmdBar)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Height(m.height).
		Render(page)
}

// CurrentView reports the page on screen.
func (m Model) CurrentView() View {
	return m.currentView
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.currentView == ViewAdmin && m.secretInput.Focused() {
		return m.handleSecretKey(msg)
	}
	if m.currentView == ViewHome && m.feedList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.feedList, cmd = m.feedList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.closeArticle()
		m.currentView = ViewHome
		return m, nil
	case key.Matches(msg, m.keys.About):
		m.closeArticle()
		m.currentView = ViewAbout
		return m, nil
	case key.Matches(msg, m.keys.Admin):
		m.closeArticle()
		return m, m.openAdmin()
	}

	switch m.currentView {
	case ViewArticle:
		return m.handleArticleKey(msg)
	case ViewAdmin:
		return m.handleAdminKey(msg)
	case ViewAbout:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = ViewHome
		}
		return m, nil
	default:
		return m.handleHomeKey(msg)
	}
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.feedList.SetDelegate(newFeedDelegate(m.theme))
	m.feedList.Styles.NoItems = styles.MutedText
	m.feedList.Styles.StatusBar = styles.FaintText.Padding(0, 0, 1, 2)
	m.feedList.Styles.FilterPrompt = styles.AccentText
	m.feedList.Styles.FilterCursor = styles.AccentText
	m.articleView.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Background))
	m.progressBar = progress.New(
		progress.WithSolidFill(m.theme.Accent),
		progress.WithoutPercentage(),
	)
	m.progressBar.EmptyColor = m.theme.SurfaceAlt
	m.progressBar.Width = m.progressWidth()
	m.secretInput.PromptStyle = styles.AccentText
	m.secretInput.TextStyle = styles.Text
	m.secretInput.PlaceholderStyle = styles.FaintText
	if m.article.loaded() {
		m.articleView.SetContent(m.renderArticleBody(m.articleView.Width))
	}
}

func (m *Model) resize() {
	height := m.bodyHeight()
	m.feedList.SetSize(max(m.width-4, 10), max(height-2, 3))

	m.articleView.Width = max(m.width-4, 10)
	m.articleView.Height = max(height-4, 1)
	if m.article.loaded() {
		m.articleView.SetContent(m.renderArticleBody(m.articleView.Width))
	}
	m.progressBar.Width = m.progressWidth()
	m.secretInput.Width = min(40, max(m.width-20, 10))
}

// bodyHeight is the space between the header and the command bar.
func (m Model) bodyHeight() int {
	return max(m.height-2, 1)
}

func (m Model) progressWidth() int {
	return max(m.width-20, 10)
}

// busy reports whether anything is loading, which keeps the spinner alive.
func (m Model) busy() bool {
	return m.feed.loading || m.article.loading || m.session.Busy
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeAt = m.now
}

func (m *Model) refreshActivity() {
	if m.opts.Store != nil {
		m.snapshot = m.opts.Store.Snapshot()
	}
	if m.currentView == ViewAdmin {
		m.activity = readActivity(m.opts.Config.LogFile)
	}
}

// recorder avoids handing a typed nil pointer to trigger.Generate.
func (m Model) recorder() trigger.Recorder {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchFeedCmd() tea.Cmd {
	fetcher := m.opts.Fetcher
	ctx := m.ctx
	return func() tea.Msg {
		if fetcher == nil {
			return feedLoadedMsg{err: errors.New("no blog api configured"), at: time.Now()}
		}
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		blogs, err := fetcher.ListBlogs(ctx)
		return feedLoadedMsg{blogs: blogs, err: err, at: time.Now()}
	}
}

func (m Model) fetchArticleCmd(id string) tea.Cmd {
	fetcher := m.opts.Fetcher
	ctx := m.ctx
	return func() tea.Msg {
		if fetcher == nil {
			return articleLoadedMsg{id: id, err: errors.New("no blog api configured")}
		}
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		blog, err := fetcher.GetBlog(ctx, id)
		return articleLoadedMsg{id: id, blog: blog, err: err}
	}
}

func (m Model) generateCmd() tea.Cmd {
	gen := m.opts.Generator
	secret := m.opts.Config.AdminSecret
	rec := m.recorder()
	ctx := m.ctx
	return func() tea.Msg {
		if gen == nil {
			return generateDoneMsg{err: errors.New("no blog api configured")}
		}
		resp, err := trigger.Generate(ctx, gen, secret, trigger.SourceManual, rec)
		return generateDoneMsg{resp: resp, err: err}
	}
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
