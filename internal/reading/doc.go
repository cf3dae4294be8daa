// Package reading tracks how far through an article the reader has scrolled.
//
// The article view reports its geometry on every scroll as a Rect. Tracker
// coalesces those reports so the percentage is recomputed at most once per
// frame, and publishes the result through a Cell that any view can read.
//
//	cell := &reading.Cell{}
//	tracker := reading.NewTracker(cell)
//	cmd := tracker.Scroll(reading.Rect{Top: -float64(offset), Height: float64(lines)})
//	// later, in Update:
//	case reading.FrameMsg:
//		tracker.Frame(msg)
//
// Percent is clamp(0, 100, -top/height*100). Stop releases the pending frame
// and resets the cell when the article view is closed.
package reading
