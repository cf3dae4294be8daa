package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/config"
	"github.com/five82/knowledgehub/internal/state"
	"github.com/five82/knowledgehub/internal/trigger"
)

const testSecret = "s3cret"

type fakeBackend struct {
	*httptest.Server
	generated chan string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{generated: make(chan string, 4)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blogs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]blogapi.Blog{
			{ID: "b1", Title: "Rust in the Kernel", Category: "Technology", CreatedAt: "2025-10-01T17:30:05.123456"},
		})
	})
	mux.HandleFunc("GET /blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "b1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Blog not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(blogapi.Blog{
			ID: "b1", Title: "Rust in the Kernel", Content: "## Why\n\nMemory safety.", Tags: []string{"rust"},
			CreatedAt: "2025-10-01T17:30:05",
		})
	})
	mux.HandleFunc("POST /admin/generate-blog", func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		fb.generated <- key
		if key != testSecret {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"Invalid admin key"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(blogapi.GenerateResponse{Message: "Blog generated successfully", BlogID: "b2"})
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(blogapi.HealthResponse{Status: "healthy", Message: "ok", Version: "1.0.0"})
	})
	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"KNOWLEDGEHUB_API_URL", "KNOWLEDGEHUB_SITE_URL", "KNOWLEDGEHUB_ADMIN_SECRET", "KNOWLEDGEHUB_LOG_FILE"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testOptions(t *testing.T, fb *fakeBackend, secret string) (Options, *bytes.Buffer) {
	t.Helper()
	body := "site_url = \"https://site.example.test\"\n"
	if secret != "" {
		body += "admin_secret = \"" + secret + "\"\n"
	}
	var out bytes.Buffer
	return Options{
		ConfigPath: writeTestConfig(t, body),
		APIURL:     fb.URL,
		Out:        &out,
	}, &out
}

func TestList(t *testing.T) {
	fb := newFakeBackend(t)
	opts, out := testOptions(t, fb, "")

	if err := List(context.Background(), opts); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, want := range []string{"TITLE", "b1", "2025-10-01", "Technology", "Rust in the Kernel"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("List output missing %q:\n%s", want, out.String())
		}
	}
}

func TestShow(t *testing.T) {
	fb := newFakeBackend(t)
	opts, out := testOptions(t, fb, "")

	if err := Show(context.Background(), opts, "b1"); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	for _, want := range []string{
		"Rust in the Kernel",
		"October 1, 2025",
		"https://site.example.test/article/b1",
		"Why\n===",
		"Memory safety.",
		"Tags: rust",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("Show output missing %q:\n%s", want, out.String())
		}
	}
}

func TestShowNotFound(t *testing.T) {
	fb := newFakeBackend(t)
	opts, _ := testOptions(t, fb, "")

	err := Show(context.Background(), opts, "missing")
	if !errors.Is(err, blogapi.ErrNotFound) {
		t.Fatalf("Show() error = %v, want ErrNotFound", err)
	}
}

func TestGenerate(t *testing.T) {
	fb := newFakeBackend(t)
	opts, out := testOptions(t, fb, testSecret)

	if err := Generate(context.Background(), opts, "  "+testSecret+" "); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := <-fb.generated; got != testSecret {
		t.Fatalf("X-Admin-Key = %q", got)
	}
	if !strings.Contains(out.String(), "Blog generated: Blog generated successfully (id b2)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestGenerateDenied(t *testing.T) {
	fb := newFakeBackend(t)
	opts, _ := testOptions(t, fb, testSecret)

	if err := Generate(context.Background(), opts, "wrong"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Generate() error = %v, want ErrAccessDenied", err)
	}
	select {
	case <-fb.generated:
		t.Fatal("denied secret must not reach the backend")
	default:
	}
}

func TestGenerateWithoutConfiguredSecret(t *testing.T) {
	fb := newFakeBackend(t)
	opts, _ := testOptions(t, fb, "")

	if err := Generate(context.Background(), opts, "anything"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("Generate() error = %v, want ErrNoSecret", err)
	}
}

func TestNext(t *testing.T) {
	fb := newFakeBackend(t)
	opts, out := testOptions(t, fb, "")
	opts.Clock = clockwork.NewFakeClockAt(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))

	if err := Next(opts); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !strings.Contains(out.String(), "Wed Oct 1 23:00 UTC+05:30") || !strings.Contains(out.String(), "5 hours from now") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestHealth(t *testing.T) {
	fb := newFakeBackend(t)
	opts, out := testOptions(t, fb, "")

	if err := Health(context.Background(), opts); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if !strings.Contains(out.String(), "healthy: ok (version 1.0.0)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestStartSchedulerRequiresSecretAndEnabled(t *testing.T) {
	cfg := config.Default()
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if StartScheduler(ctx, cfg, trigger.DefaultWindow(), nil, nil, clock) {
		t.Fatal("scheduler started without a secret")
	}
	cfg.AdminSecret = testSecret
	cfg.Trigger.Enabled = false
	if StartScheduler(ctx, cfg, trigger.DefaultWindow(), nil, nil, clock) {
		t.Fatal("scheduler started while disabled")
	}
}

func TestStartSchedulerFiresAtWindow(t *testing.T) {
	fb := newFakeBackend(t)
	client, err := blogapi.NewClient(fb.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	cfg := config.Default()
	cfg.AdminSecret = testSecret
	clock := clockwork.NewFakeClockAt(time.Date(2025, 10, 1, 17, 29, 0, 0, time.UTC))
	store := &state.Store{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !StartScheduler(ctx, cfg, trigger.DefaultWindow(), client, store, clock) {
		t.Fatal("scheduler did not start")
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("scheduler never waited: %v", err)
	}
	clock.Advance(time.Minute)

	select {
	case key := <-fb.generated:
		if key != testSecret {
			t.Fatalf("X-Admin-Key = %q", key)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no generation request at 23:00 UTC+05:30")
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().Fires == 0 {
		if time.Now().After(deadline) {
			t.Fatal("fire was not recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunTriggerReturnsOnCancel(t *testing.T) {
	fb := newFakeBackend(t)
	opts, _ := testOptions(t, fb, testSecret)
	opts.Clock = clockwork.NewFakeClock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := RunTrigger(ctx, opts); err != nil {
		t.Fatalf("RunTrigger() error = %v", err)
	}
}

func TestRunTriggerRequiresSecret(t *testing.T) {
	fb := newFakeBackend(t)
	opts, _ := testOptions(t, fb, "")
	if err := RunTrigger(context.Background(), opts); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("RunTrigger() error = %v, want ErrNoSecret", err)
	}
}

func TestSetupAppliesOverrides(t *testing.T) {
	path := writeTestConfig(t, "[trigger]\ninterval = \"2m\"\n")
	rt, err := setup(Options{ConfigPath: path, APIURL: "http://localhost:8000", Interval: 30 * time.Second})
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if rt.client.BaseURL() != "http://localhost:8000" {
		t.Fatalf("BaseURL = %q", rt.client.BaseURL())
	}
	if rt.cfg.Trigger.Interval != 30*time.Second {
		t.Fatalf("Interval = %s", rt.cfg.Trigger.Interval)
	}
}
