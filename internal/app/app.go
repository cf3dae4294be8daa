package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/config"
	"github.com/five82/knowledgehub/internal/state"
	"github.com/five82/knowledgehub/internal/trigger"
	"github.com/five82/knowledgehub/internal/ui"
)

// ErrNoSecret is returned by commands that need the admin secret when none is
// configured.
var ErrNoSecret = errors.New("no admin secret configured (set admin_secret or KNOWLEDGEHUB_ADMIN_SECRET)")

// Options configure the knowledgehub application.
type Options struct {
	ConfigPath string
	APIURL     string        // overrides config and environment when set
	Interval   time.Duration // overrides trigger.interval when positive
	Clock      clockwork.Clock
	Out        io.Writer
}

func (o Options) clock() clockwork.Clock {
	if o.Clock == nil {
		return clockwork.NewRealClock()
	}
	return o.Clock
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// runtime is everything a command needs after config is resolved.
type runtime struct {
	cfg    config.Config
	client *blogapi.Client
	window trigger.Window
}

func setup(opts Options) (runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return runtime{}, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.Interval > 0 {
		cfg.Trigger.Interval = opts.Interval
	}

	window, err := cfg.Window()
	if err != nil {
		return runtime{}, fmt.Errorf("trigger window: %w", err)
	}

	client, err := blogapi.NewClient(cfg.APIURL)
	if err != nil {
		return runtime{}, fmt.Errorf("init blog api client: %w", err)
	}
	return runtime{cfg: cfg, client: client, window: window}, nil
}

// Run boots the TUI until the user quits or the context is cancelled. The
// scheduled trigger runs in the background for the lifetime of the TUI.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(rt.cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	log.Printf("session %s: starting, api=%s", uuid.NewString(), rt.client.BaseURL())
	go checkHealth(ctx, rt.client)

	store := &state.Store{}
	scheduled := StartScheduler(ctx, rt.cfg, rt.window, rt.client, store, opts.clock())

	return ui.Run(ctx, ui.Options{
		Config:    rt.cfg,
		Fetcher:   rt.client,
		Generator: rt.client,
		Store:     store,
		Window:    rt.window,
		Scheduled: scheduled,
	})
}

// RunTrigger runs the scheduled trigger without a UI until ctx is cancelled.
// The trigger.enabled setting only governs the TUI background loop; asking
// for this command explicitly always arms the trigger.
func RunTrigger(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	if !rt.cfg.HasAdminSecret() {
		return ErrNoSecret
	}

	store := &state.Store{}
	s := newScheduler(rt.cfg, rt.window, rt.client, store, opts.clock())
	logArmed(s)
	s.Run(ctx)

	snap := store.Snapshot()
	log.Printf("trigger stopped: %d generated, %d failed", snap.Fires, snap.Failures)
	return nil
}

// openLogFile redirects the standard logger to path so log output never
// lands on the alternate screen.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "knowledgehub")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func checkHealth(ctx context.Context, client *blogapi.Client) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	health, err := client.Health(ctx)
	if err != nil {
		log.Printf("health check failed: %v", err)
		return
	}
	log.Printf("health: %s (%s) version %s", health.Status, health.Message, health.Version)
}
