// Package state holds what the UI renders: the last projected grid, the
// resolved base, the current notice, and whether an action is running.
//
// # Architecture
//
//	Producers (app commands, config watcher):   Consumer (UI):
//	┌──────────────────────┐                    ┌──────────────────┐
//	│ TryBegin / End       │                    │                  │
//	│ SetBase / SetGrid    │───── (mutex) ─────→│ store.Snapshot() │
//	│ Notify               │                    │   render view    │
//	└──────────────────────┘                    └──────────────────┘
//
// # Concurrency Model
//
// Store uses a readers-writer lock held only while copying. Snapshot returns
// deep copies of the grid so the UI can never observe a half-written update.
//
// TryBegin is the single gate for user actions: it fails while another
// action is in flight, which keeps backend resolution from ever running
// twice at once.
package state
