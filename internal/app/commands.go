package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/knowledgehub/internal/admin"
	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/content"
	"github.com/five82/knowledgehub/internal/trigger"
)

// ErrAccessDenied is returned when the supplied secret does not match.
var ErrAccessDenied = errors.New(admin.MsgDenied)

// List prints the feed as a table.
func List(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	blogs, err := rt.client.ListBlogs(ctx)
	if err != nil {
		return fmt.Errorf("list blogs: %w", err)
	}

	out := opts.out()
	if len(blogs) == 0 {
		_, err := fmt.Fprintln(out, "No blogs yet")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DATE", "CATEGORY", "TITLE")
	for _, b := range blogs {
		date := ""
		if created := b.ParsedCreatedAt(); !created.IsZero() {
			date = created.Format("2006-01-02")
		}
		t.Row(b.ID, date, b.Category, b.Title)
	}
	_, err = fmt.Fprintln(out, t.String())
	return err
}

// Show prints one article as plain text.
func Show(ctx context.Context, opts Options, id string) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	blog, err := rt.client.GetBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("get blog %q: %w", id, err)
	}
	return writeArticle(opts, rt, blog)
}

func writeArticle(opts Options, rt runtime, blog blogapi.Blog) error {
	p := message.NewPrinter(language.English)
	words := content.WordCount(blog.Content)

	var b strings.Builder
	b.WriteString(blog.Title + "\n")
	meta := make([]string, 0, 4)
	if blog.Category != "" {
		meta = append(meta, blog.Category)
	}
	if created := blog.ParsedCreatedAt(); !created.IsZero() {
		meta = append(meta, created.Format("January 2, 2006"))
	}
	meta = append(meta,
		p.Sprintf("%d words", words),
		fmt.Sprintf("%d min read", content.ReadingMinutes(words)),
	)
	b.WriteString(strings.Join(meta, " · ") + "\n")
	b.WriteString(rt.cfg.ArticleURL(blog.ID) + "\n")

	for _, block := range content.Parse(blog.Content) {
		b.WriteString("\n")
		switch block.Kind {
		case content.Heading2:
			b.WriteString(block.Text + "\n" + strings.Repeat("=", len([]rune(block.Text))) + "\n")
		case content.Heading3:
			b.WriteString(block.Text + "\n" + strings.Repeat("-", len([]rune(block.Text))) + "\n")
		default:
			b.WriteString(block.Text + "\n")
		}
	}
	if tags := blog.CleanTags(); len(tags) > 0 {
		b.WriteString("\nTags: " + strings.Join(tags, ", ") + "\n")
	}

	_, err := fmt.Fprint(opts.out(), b.String())
	return err
}

// Next prints the next scheduled trigger instant.
func Next(opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	now := opts.clock().Now()
	next, err := rt.window.Next(now)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.out(), "next trigger: %s (%s)\n",
		next.Format("Mon Jan 2 15:04 MST"), humanize.RelTime(next, now, "ago", "from now"))
	return err
}

// Generate runs one manual generation after checking secret against the
// configured admin secret.
func Generate(ctx context.Context, opts Options, secret string) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	if !rt.cfg.HasAdminSecret() {
		return ErrNoSecret
	}
	session := admin.Session{Entered: secret}
	if !session.Submit(rt.cfg.AdminSecret) {
		return ErrAccessDenied
	}
	session.BeginGenerate()
	_, _ = fmt.Fprintln(opts.out(), session.Message)

	resp, err := trigger.Generate(ctx, rt.client, rt.cfg.AdminSecret, trigger.SourceManual, nil)
	session.FinishGenerate(resp, err)
	if err != nil {
		return fmt.Errorf("%s: %w", session.Message, err)
	}
	if resp.BlogID != "" {
		_, err = fmt.Fprintf(opts.out(), "%s (id %s)\n", session.Message, resp.BlogID)
		return err
	}
	_, err = fmt.Fprintln(opts.out(), session.Message)
	return err
}

// Health prints the backend health endpoint.
func Health(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	h, err := rt.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	_, err = fmt.Fprintf(opts.out(), "%s: %s (version %s)\n", h.Status, h.Message, h.Version)
	return err
}
