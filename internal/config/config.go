package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/five82/knowledgehub/internal/trigger"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL      string
	SiteURL     string
	AdminSecret string
	LogFile     string
	Theme       string
	Trigger     Trigger
}

// Trigger configures the scheduled generation request.
type Trigger struct {
	Enabled   bool
	Hour      int
	Minute    int
	UTCOffset string
	Interval  time.Duration
}

const (
	defaultConfigPath = "~/.config/knowledgehub/config.toml"
	defaultLogFile    = "~/.local/state/knowledgehub/knowledgehub.log"
	defaultAPIURL     = "https://autoblog-x3m1.onrender.com"
	defaultSiteURL    = "https://autoblog-1-tyoa.onrender.com"
	defaultTheme      = "Nightfox"
	defaultHour       = 23
	defaultMinute     = 0
	defaultUTCOffset  = "+05:30"
	defaultInterval   = time.Minute
)

// envOverrides are applied on top of the file.
type envOverrides struct {
	APIURL      string `env:"KNOWLEDGEHUB_API_URL"`
	SiteURL     string `env:"KNOWLEDGEHUB_SITE_URL"`
	AdminSecret string `env:"KNOWLEDGEHUB_ADMIN_SECRET"`
	LogFile     string `env:"KNOWLEDGEHUB_LOG_FILE"`
}

type rawConfig struct {
	APIURL      string     `toml:"api_url"`
	SiteURL     string     `toml:"site_url"`
	AdminSecret string     `toml:"admin_secret"`
	LogFile     string     `toml:"log_file"`
	Theme       string     `toml:"theme"`
	Trigger     rawTrigger `toml:"trigger"`
}

type rawTrigger struct {
	Enabled   *bool  `toml:"enabled"`
	Hour      *int   `toml:"hour"`
	Minute    *int   `toml:"minute"`
	UTCOffset string `toml:"utc_offset"`
	Interval  string `toml:"interval"`
}

// Default returns the built-in configuration. It has no admin secret.
func Default() Config {
	return Config{
		APIURL:  defaultAPIURL,
		SiteURL: defaultSiteURL,
		LogFile: mustExpand(defaultLogFile),
		Theme:   defaultTheme,
		Trigger: Trigger{
			Enabled:   true,
			Hour:      defaultHour,
			Minute:    defaultMinute,
			UTCOffset: defaultUTCOffset,
			Interval:  defaultInterval,
		},
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config from the OS filesystem.
func Load(path string) (Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS locates and parses the config on fsys, falling back to defaults when
// the file is missing, then applies environment overrides.
func LoadFS(fsys afero.Fs, path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := afero.ReadFile(fsys, resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var raw rawConfig
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := raw.apply(&cfg); err != nil {
			return Config{}, err
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	overrides.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (r rawConfig) apply(cfg *Config) error {
	setString(&cfg.APIURL, r.APIURL)
	setString(&cfg.SiteURL, r.SiteURL)
	setString(&cfg.AdminSecret, r.AdminSecret)
	setString(&cfg.Theme, r.Theme)
	if v := strings.TrimSpace(r.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	t := r.Trigger
	if t.Enabled != nil {
		cfg.Trigger.Enabled = *t.Enabled
	}
	if t.Hour != nil {
		cfg.Trigger.Hour = *t.Hour
	}
	if t.Minute != nil {
		cfg.Trigger.Minute = *t.Minute
	}
	setString(&cfg.Trigger.UTCOffset, t.UTCOffset)
	if v := strings.TrimSpace(t.Interval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse trigger.interval %q: %w", v, err)
		}
		cfg.Trigger.Interval = d
	}
	return nil
}

func (o envOverrides) apply(cfg *Config) {
	setString(&cfg.APIURL, o.APIURL)
	setString(&cfg.SiteURL, o.SiteURL)
	setString(&cfg.AdminSecret, o.AdminSecret)
	if v := strings.TrimSpace(o.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
}

// Validate reports trigger settings that cannot be scheduled.
func (c Config) Validate() error {
	t := c.Trigger
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("trigger.hour %d out of range 0-23", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("trigger.minute %d out of range 0-59", t.Minute)
	}
	if t.Interval <= 0 {
		return fmt.Errorf("trigger.interval must be positive, got %s", t.Interval)
	}
	if _, err := trigger.ParseOffset(t.UTCOffset); err != nil {
		return fmt.Errorf("trigger.utc_offset: %w", err)
	}
	return nil
}

// Window returns the trigger window described by the config.
func (c Config) Window() (trigger.Window, error) {
	loc, err := trigger.ParseOffset(c.Trigger.UTCOffset)
	if err != nil {
		return trigger.Window{}, err
	}
	return trigger.Window{Hour: c.Trigger.Hour, Minute: c.Trigger.Minute, Offset: loc}, nil
}

// HasAdminSecret reports whether an admin secret is configured.
func (c Config) HasAdminSecret() bool {
	return c.AdminSecret != ""
}

// ArticleURL returns the public link for a blog id.
func (c Config) ArticleURL(id string) string {
	base := strings.TrimRight(strings.TrimSpace(c.SiteURL), "/")
	if base == "" {
		base = defaultSiteURL
	}
	return base + "/article/" + id
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
