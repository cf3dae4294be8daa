// Package state holds generation activity shared between fire goroutines and
// the UI.
//
// # Overview
//
// Scheduled fires run on their own goroutines and may overlap. Each one
// records its outcome here; the UI reads a Snapshot on every tick to render
// the admin panel and the header badge.
//
//	Producers (fires):              Consumer (UI):
//	┌──────────────────────┐       ┌──────────────────┐
//	│ trigger.Generate()   │       │                  │
//	│      ↓               │       │                  │
//	│ store.RecordFire()   │──────→│ store.Snapshot() │
//	└──────────────────────┘ (mutex)└──────────────────┘
//
// # Concurrency Model
//
// Store uses a sync.RWMutex: any number of writers (one per in-flight fire)
// and any number of readers. Snapshot returns a value copy and re-wraps the
// last error so callers never share the stored instance.
//
// Nothing here is persisted. Counters start at zero with the process.
package state
