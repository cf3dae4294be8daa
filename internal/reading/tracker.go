package reading

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the delay between a scroll event and the recomputation it
// schedules, roughly one display frame.
const FrameInterval = time.Second / 60

// FrameMsg is delivered when a scheduled frame elapses. Token identifies the
// scroll that scheduled it; only the newest token is honoured.
type FrameMsg struct {
	Token uint64
}

// Tracker coalesces bursts of scroll events into at most one progress update
// per frame. Every Scroll cancels the pending frame and schedules a new one;
// the update then reads the most recent rect.
type Tracker struct {
	Cell *Cell

	mu      sync.Mutex
	token   uint64
	pending bool
	rect    Rect
}

// NewTracker returns a tracker writing into cell.
func NewTracker(cell *Cell) *Tracker {
	return &Tracker{Cell: cell}
}

// Scroll records the latest rect and returns a command that delivers a
// FrameMsg after FrameInterval.
func (t *Tracker) Scroll(rect Rect) tea.Cmd {
	t.mu.Lock()
	t.token++
	t.pending = true
	t.rect = rect
	token := t.token
	t.mu.Unlock()

	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return FrameMsg{Token: token}
	})
}

// Frame applies a delivered frame. It returns false for stale frames, which
// were superseded by a later Scroll or released by Stop.
func (t *Tracker) Frame(msg FrameMsg) bool {
	t.mu.Lock()
	if !t.pending || msg.Token != t.token {
		t.mu.Unlock()
		return false
	}
	t.pending = false
	rect := t.rect
	t.mu.Unlock()

	if t.Cell != nil {
		t.Cell.Set(rect.Percent())
	}
	return true
}

// Pending reports whether a frame is scheduled.
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Stop drops any pending frame and resets the cell.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.token++
	t.pending = false
	t.rect = Rect{}
	t.mu.Unlock()

	if t.Cell != nil {
		t.Cell.Reset()
	}
}
