package app

import (
	"context"
	"log"

	"github.com/jonboulle/clockwork"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/config"
	"github.com/five82/knowledgehub/internal/trigger"
)

// StartScheduler launches the background trigger loop when the config allows
// it and reports whether it did. It returns immediately.
func StartScheduler(ctx context.Context, cfg config.Config, window trigger.Window, gen blogapi.Generator, rec trigger.Recorder, clock clockwork.Clock) bool {
	if !cfg.Trigger.Enabled {
		log.Printf("scheduled trigger disabled in config")
		return false
	}
	if !cfg.HasAdminSecret() {
		log.Printf("warning: scheduled trigger not started: %v", ErrNoSecret)
		return false
	}

	s := newScheduler(cfg, window, gen, rec, clock)
	logArmed(s)
	s.Start(ctx)
	return true
}

func newScheduler(cfg config.Config, window trigger.Window, gen blogapi.Generator, rec trigger.Recorder, clock clockwork.Clock) *trigger.Scheduler {
	return &trigger.Scheduler{
		Clock:    clock,
		Interval: cfg.Trigger.Interval,
		Window:   window,
		Fire:     trigger.NewGenerateAction(gen, cfg.AdminSecret, rec),
	}
}

func logArmed(s *trigger.Scheduler) {
	next, err := s.NextFire()
	if err != nil {
		log.Printf("trigger armed: window=%s interval=%s (next fire unknown: %v)", s.Window, s.Interval, err)
		return
	}
	log.Printf("trigger armed: window=%s interval=%s next=%s", s.Window, s.Interval, next.Format("2006-01-02 15:04 MST"))
}
