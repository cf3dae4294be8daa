// Package ui provides the terminal interface for knowledgehub.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea Model. Fetches, generation requests and the
// refresh tick run as tea.Cmds and report back as messages; Update is the
// only place state changes.
//
// # Views
//
//   - Home: the article feed (bubbles list) with loading, error and empty states
//   - Article: one blog in a viewport, with a reading progress bar on top
//   - About: static project description
//   - Admin: secret gate, manual generation, schedule status and recent runs
//
// A help overlay lists every binding and replaces the screen while open.
//
// # Reading Progress
//
// The article viewport is mapped onto a reading.Rect (one row per unit, top
// negative once scrolled). Every scroll goes through reading.Tracker, which
// coalesces bursts to one update per frame and writes the percentage into a
// reading.Cell. Leaving the article stops the tracker and resets the cell.
//
// # Fetch Errors
//
// A failed feed shows "Failed to load blogs. Please try again later." with an
// empty list; a failed article shows "Article Not Found". Neither retries on
// its own; r reloads.
//
// # Themes
//
// Nightfox, Kanagawa and Slate. The initial theme comes from the config and
// T cycles for the session only.
//
// # Usage Example
//
//	err := ui.Run(ctx, ui.Options{
//		Config:    cfg,
//		Fetcher:   client,
//		Generator: client,
//		Store:     store,
//		Window:    window,
//		Scheduled: true,
//	})
package ui
