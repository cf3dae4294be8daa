package reading

import "testing"

func TestTrackerCoalescesBurst(t *testing.T) {
	cell := &Cell{}
	tr := NewTracker(cell)

	var tokens []uint64
	for _, top := range []float64{-60, -120, -300} {
		if cmd := tr.Scroll(Rect{Top: top, Height: 600}); cmd == nil {
			t.Fatal("Scroll returned nil command")
		}
		tokens = append(tokens, tr.token)
	}

	updates := 0
	for _, tok := range tokens {
		if tr.Frame(FrameMsg{Token: tok}) {
			updates++
		}
	}
	if updates != 1 {
		t.Fatalf("updates = %d, want 1", updates)
	}
	if got := cell.Load(); got != 50 {
		t.Fatalf("cell = %v, want 50 from the latest rect", got)
	}
	if tr.Pending() {
		t.Fatal("no frame should be pending after it ran")
	}
}

func TestTrackerFrameRunsOnce(t *testing.T) {
	cell := &Cell{}
	tr := NewTracker(cell)
	tr.Scroll(Rect{Top: -150, Height: 600})
	msg := FrameMsg{Token: tr.token}

	if !tr.Frame(msg) {
		t.Fatal("first frame should apply")
	}
	cell.Set(0)
	if tr.Frame(msg) {
		t.Fatal("repeated frame should be ignored")
	}
	if cell.Load() != 0 {
		t.Fatalf("cell = %v, want untouched", cell.Load())
	}
}

func TestTrackerStopReleasesPendingFrame(t *testing.T) {
	cell := &Cell{}
	tr := NewTracker(cell)
	tr.Scroll(Rect{Top: -600, Height: 600})
	tr.Frame(FrameMsg{Token: tr.token})
	if cell.Load() != 100 {
		t.Fatalf("cell = %v, want 100", cell.Load())
	}

	tr.Scroll(Rect{Top: -300, Height: 600})
	stale := FrameMsg{Token: tr.token}
	tr.Stop()

	if cell.Load() != 0 {
		t.Fatalf("cell after Stop = %v, want 0", cell.Load())
	}
	if tr.Frame(stale) {
		t.Fatal("frame scheduled before Stop should not apply")
	}
	if cell.Load() != 0 {
		t.Fatalf("cell = %v, want 0", cell.Load())
	}
}

func TestTrackerNilCell(t *testing.T) {
	tr := &Tracker{}
	tr.Scroll(Rect{Top: -1, Height: 2})
	if !tr.Frame(FrameMsg{Token: tr.token}) {
		t.Fatal("frame should apply without a cell")
	}
	tr.Stop()
}
