package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/knowledgehub/internal/admin"
	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/config"
	"github.com/five82/knowledgehub/internal/reading"
	"github.com/five82/knowledgehub/internal/state"
	"github.com/five82/knowledgehub/internal/trigger"
)

const testSecret = "Ashlesha@3462"

type fakeAPI struct {
	blogs   []blogapi.Blog
	listErr error
	getErr  error
	resp    blogapi.GenerateResponse
	genErr  error
	secrets []string
}

func (f *fakeAPI) ListBlogs(context.Context) ([]blogapi.Blog, error) {
	return f.blogs, f.listErr
}

func (f *fakeAPI) GetBlog(_ context.Context, id string) (blogapi.Blog, error) {
	if f.getErr != nil {
		return blogapi.Blog{}, f.getErr
	}
	for _, b := range f.blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return blogapi.Blog{}, blogapi.ErrNotFound
}

func (f *fakeAPI) Generate(_ context.Context, secret string) (blogapi.GenerateResponse, error) {
	f.secrets = append(f.secrets, secret)
	return f.resp, f.genErr
}

func sampleBlogs() []blogapi.Blog {
	var body strings.Builder
	body.WriteString("## Introduction\n\n")
	for i := 0; i < 60; i++ {
		body.WriteString("Paragraph with enough words to take up a full line of the reader view.\n\n")
	}
	return []blogapi.Blog{
		{ID: "b1", Title: "Rust in the Kernel", Content: body.String(), Category: "Technology", Tags: []string{"rust", "linux"}, CreatedAt: "2025-10-01T17:30:05.123456"},
		{ID: "b2", Title: "Vector Databases", Content: "Short.", Category: "AI", CreatedAt: "2025-09-30T17:30:00"},
	}
}

func newTestModel(t *testing.T, api *fakeAPI) (Model, *state.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.AdminSecret = testSecret
	cfg.LogFile = filepath.Join(t.TempDir(), "knowledgehub.log")
	cfg.SiteURL = "https://site.example.test"

	store := &state.Store{}
	m := New(context.Background(), Options{
		Config:    cfg,
		Fetcher:   api,
		Generator: api,
		Store:     store,
		Window:    trigger.DefaultWindow(),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches, returning every message of type T.
func collect[T any](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

func loadFeed(t *testing.T, m Model) Model {
	t.Helper()
	msgs := collect[feedLoadedMsg](m.fetchFeedCmd())
	if len(msgs) != 1 {
		t.Fatalf("fetchFeedCmd produced %d messages", len(msgs))
	}
	m, _ = update(t, m, msgs[0])
	return m
}

func TestFeedErrorShowsMessageAndEmptyList(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{listErr: errors.New("connection refused")})
	if !m.feed.loading {
		t.Fatal("feed should start loading")
	}

	m = loadFeed(t, m)
	if m.feed.loading {
		t.Fatal("loading should be cleared after failure")
	}
	if m.feed.err != feedErrorMessage {
		t.Fatalf("err = %q, want %q", m.feed.err, feedErrorMessage)
	}
	if len(m.feedList.Items()) != 0 {
		t.Fatalf("list has %d items, want 0", len(m.feedList.Items()))
	}
	if !strings.Contains(m.View(), feedErrorMessage) {
		t.Fatalf("view does not show the error message")
	}

	// No automatic retry: opening does nothing while in error.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.CurrentView() != ViewHome {
		t.Fatal("enter on failed feed should do nothing")
	}
}

func TestFeedEmptyState(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})
	m = loadFeed(t, m)
	view := m.View()
	if !strings.Contains(view, feedEmptyTitle) || !strings.Contains(view, feedEmptyBody) {
		t.Fatal("view does not show the empty state")
	}
}

func TestFeedReloadClearsError(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("boom")}
	m, _ := newTestModel(t, api)
	m = loadFeed(t, m)

	api.listErr = nil
	api.blogs = sampleBlogs()
	m, cmd := update(t, m, keyRunes("r"))
	if cmd == nil || !m.feed.loading || m.feed.err != "" {
		t.Fatalf("reload state = %#v", m.feed)
	}
	m = loadFeed(t, m)
	if len(m.feedList.Items()) != 2 {
		t.Fatalf("list has %d items, want 2", len(m.feedList.Items()))
	}
	if !strings.Contains(m.View(), "Rust in the Kernel") {
		t.Fatal("view does not list the first blog")
	}
}

func openFirstArticle(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentView() != ViewArticle || !m.article.loading {
		t.Fatalf("view = %s loading = %v, want loading article", m.CurrentView(), m.article.loading)
	}
	if cmd == nil {
		t.Fatal("expected fetch command")
	}
	msgs := collect[articleLoadedMsg](m.fetchArticleCmd(m.article.id))
	if len(msgs) != 1 {
		t.Fatalf("fetchArticleCmd produced %d messages", len(msgs))
	}
	m, _ = update(t, m, msgs[0])
	return m
}

func TestArticleOpenAndRender(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{blogs: sampleBlogs()})
	m = loadFeed(t, m)
	m = openFirstArticle(t, m)

	if !m.article.loaded() || m.article.id != "b1" {
		t.Fatalf("article state = %#v", m.article)
	}
	if len(m.article.blocks) == 0 || m.article.blocks[0].Text != "Introduction" {
		t.Fatalf("blocks = %#v", m.article.blocks)
	}
	body := m.renderArticleBody(100)
	for _, want := range []string{"Rust in the Kernel", "October 1, 2025", "min read", "#rust"} {
		if !strings.Contains(body, want) {
			t.Fatalf("article body missing %q", want)
		}
	}
}

func TestArticleNotFound(t *testing.T) {
	api := &fakeAPI{blogs: sampleBlogs(), getErr: blogapi.ErrNotFound}
	m, _ := newTestModel(t, api)
	m = loadFeed(t, m)
	m = openFirstArticle(t, m)

	view := m.View()
	if !strings.Contains(view, articleNotFoundTitle) || !strings.Contains(view, articleErrorMessage) {
		t.Fatal("view does not show the not found state")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.CurrentView() != ViewHome {
		t.Fatalf("view = %s, want Home", m.CurrentView())
	}
}

func TestArticleIgnoresStaleResponse(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{blogs: sampleBlogs()})
	m = loadFeed(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, articleLoadedMsg{id: "other", blog: blogapi.Blog{Title: "Wrong"}})
	if !m.article.loading {
		t.Fatal("stale response should not complete the load")
	}
}

func TestArticleScrollProgress(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{blogs: sampleBlogs()})
	m = loadFeed(t, m)
	m = openFirstArticle(t, m)

	// Drain the frame scheduled by the initial layout.
	var frames []reading.FrameMsg
	for i := 0; i < 40; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		frames = append(frames, collect[reading.FrameMsg](cmd)...)
	}
	if len(frames) == 0 {
		t.Fatal("scrolling scheduled no frames")
	}

	applied := 0
	for _, f := range frames {
		if m.tracker.Frame(f) {
			applied++
		}
	}
	if applied != 1 {
		t.Fatalf("applied %d frames, want 1", applied)
	}

	want := m.articleRect().Percent()
	if got := m.progressCell.Load(); got != want || got <= 0 {
		t.Fatalf("progress = %v, want %v (> 0)", got, want)
	}
	if !m.scrollTopVisible() {
		t.Fatal("40 rows down should show the scroll-top hint")
	}

	m, cmd := update(t, m, keyRunes("t"))
	for _, f := range collect[reading.FrameMsg](cmd) {
		m, _ = update(t, m, f)
	}
	if m.articleView.YOffset != 0 || m.progressCell.Load() != 0 {
		t.Fatalf("after top: offset=%d progress=%v", m.articleView.YOffset, m.progressCell.Load())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.progressCell.Load() != 0 || m.tracker.Pending() {
		t.Fatal("closing the article should reset progress and drop pending frames")
	}
}

func TestArticleShareCopiesLink(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m, _ := newTestModel(t, &fakeAPI{blogs: sampleBlogs()})
	m = loadFeed(t, m)
	m = openFirstArticle(t, m)
	m, _ = update(t, m, keyRunes("s"))

	if copied != "https://site.example.test/article/b1" {
		t.Fatalf("copied %q", copied)
	}
	if m.notice != linkCopiedNotice {
		t.Fatalf("notice = %q", m.notice)
	}
}

func typeSecret(t *testing.T, m Model, secret string) Model {
	t.Helper()
	m, _ = update(t, m, keyRunes(secret))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestAdminGateAndManualGenerate(t *testing.T) {
	api := &fakeAPI{resp: blogapi.GenerateResponse{Message: "Blog generated successfully", BlogID: "new"}}
	m, store := newTestModel(t, api)

	m, _ = update(t, m, keyRunes("3"))
	if m.CurrentView() != ViewAdmin || !m.secretInput.Focused() {
		t.Fatal("admin view should focus the secret input")
	}

	m = typeSecret(t, m, "wrong")
	if m.session.Authorized || m.session.Message != admin.MsgDenied {
		t.Fatalf("session = %#v, want denied", m.session)
	}
	if m.secretInput.Value() != "" {
		t.Fatal("input should be cleared after submit")
	}

	// Keys that are global elsewhere go into the input while it has focus.
	m = typeSecret(t, m, testSecret)
	if !m.session.Authorized || m.session.Message != admin.MsgGranted {
		t.Fatalf("session = %#v, want granted", m.session)
	}
	if m.secretInput.Focused() {
		t.Fatal("input should blur once unlocked")
	}

	m, cmd := update(t, m, keyRunes("g"))
	if cmd == nil || !m.session.Busy || m.session.Message != admin.MsgBusy {
		t.Fatalf("session = %#v, want busy", m.session)
	}
	m, again := update(t, m, keyRunes("g"))
	if again != nil {
		t.Fatal("second generate while busy should be refused")
	}

	done := collect[generateDoneMsg](m.generateCmd())
	if len(done) != 1 {
		t.Fatalf("generateCmd produced %d messages", len(done))
	}
	m, cmd = update(t, m, done[0])
	if m.session.Busy || m.session.Message != "Blog generated: Blog generated successfully" {
		t.Fatalf("session = %#v", m.session)
	}
	if cmd == nil || !m.feed.loading {
		t.Fatal("a successful generation should reload the feed")
	}
	if len(api.secrets) == 0 || api.secrets[0] != testSecret {
		t.Fatalf("secrets sent = %v", api.secrets)
	}
	snap := store.Snapshot()
	if snap.Fires != 1 || snap.Last.Source != trigger.SourceManual {
		t.Fatalf("snapshot = %#v", snap)
	}
}

func TestAdminGenerateFailure(t *testing.T) {
	api := &fakeAPI{genErr: errors.New("timeout")}
	m, _ := newTestModel(t, api)
	m, _ = update(t, m, keyRunes("3"))
	m = typeSecret(t, m, testSecret)
	m, _ = update(t, m, keyRunes("g"))

	done := collect[generateDoneMsg](m.generateCmd())
	m, _ = update(t, m, done[0])
	if m.session.Message != admin.MsgFailed || m.session.Outcome != admin.OutcomeError {
		t.Fatalf("session = %#v", m.session)
	}
}

func TestAdminLockedWithoutSecret(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})
	m.opts.Config.AdminSecret = ""
	m, _ = update(t, m, keyRunes("A"))
	m = typeSecret(t, m, "")
	if m.session.Authorized {
		t.Fatal("empty configured secret must never unlock")
	}
	if !strings.Contains(m.View(), "No admin secret configured") {
		t.Fatal("view should explain that no secret is configured")
	}
}

func TestNavigationAndOverlays(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})

	m, _ = update(t, m, keyRunes("2"))
	if m.CurrentView() != ViewAbout {
		t.Fatalf("view = %s, want About", m.CurrentView())
	}
	if !strings.Contains(m.View(), "Tech Stack") {
		t.Fatal("about view missing content")
	}
	m, _ = update(t, m, keyRunes("h"))
	if m.CurrentView() != ViewHome {
		t.Fatalf("view = %s, want Home", m.CurrentView())
	}

	m, _ = update(t, m, keyRunes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keys") {
		t.Fatal("help overlay not shown")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatal("esc should close help")
	}

	m, _ = update(t, m, keyRunes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %s, want Kanagawa", m.theme.Name)
	}

	_, cmd := update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should produce QuitMsg")
	}
}
