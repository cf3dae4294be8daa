package trigger

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the polling cadence of the trigger check.
const DefaultInterval = time.Minute

// FireFunc performs the remote action for a matched window. It runs on its
// own goroutine and is never awaited by the scheduler.
type FireFunc func(ctx context.Context, req Request)

// Scheduler polls the clock on a fixed interval and fires once for every
// check that lands in the trigger minute.
//
// Checks are serialized: the next wait starts only after the previous check
// was evaluated. Fires are not: a slow request does not delay the next check,
// and two checks in the same minute produce two overlapping fires. A minute
// during which no check runs is skipped for that day.
type Scheduler struct {
	Clock    clockwork.Clock
	Interval time.Duration
	Window   Window
	Fire     FireFunc
}

// Start runs the scheduler on a background goroutine and returns
// immediately. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.Run(ctx)
}

// Run blocks, checking the window every Interval until ctx is cancelled.
// The first check happens one Interval after Run starts.
func (s *Scheduler) Run(ctx context.Context) {
	clock := s.clock()
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	// In-flight requests outlive the loop; only the polling stops.
	fireCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.After(interval):
		}
		s.Tick(fireCtx, clock.Now())
	}
}

// Tick evaluates one check at now and launches Fire when it matches.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	req, ok := s.Window.Check(now)
	if !ok || s.Fire == nil {
		return ok
	}
	go s.Fire(ctx, req)
	return true
}

// NextFire returns the next trigger instant after the scheduler clock's now.
func (s *Scheduler) NextFire() (time.Time, error) {
	return s.Window.Next(s.clock().Now())
}

func (s *Scheduler) clock() clockwork.Clock {
	if s.Clock == nil {
		return clockwork.NewRealClock()
	}
	return s.Clock
}
