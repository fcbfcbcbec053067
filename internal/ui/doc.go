// Package ui provides the slotboard terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. A single Model owns layout and input state
// and reads everything else from a state.Store snapshot, refreshed on a tick.
// Actions are never run on the UI goroutine: a key press becomes a
// command.Request handed to the Runner inside a tea.Cmd, and the returned
// outcome triggers a fresh snapshot.
//
// # Package Structure
//
//   - app.go: Model, Update/View, action dispatch and the Run entry point
//   - input.go: the address and upload-path text field
//   - header.go: status bar, command bar and the expiring notice footer
//   - logs.go: log pane fed by logtail
//   - theme.go: colour themes and their mapping onto grid.Styles
//   - keys.go, help.go: key bindings and the help overlay
//
// # Views
//
//   - Timetable: the day by slot grid, rendered with grid.Render in a
//     scrollable viewport
//   - Logs: the tail of slotboard's own log file, re-read while visible
//
// # Busy Gating
//
// While any action is running, whether started here, by the initial health
// check, or by the config watcher, every action key is ignored. The address
// field cannot be edited mid-request, so a probe never races a new address.
//
// # Notices
//
// Outcome messages live in the store. The footer shows the latest one for
// NoticeTTL and then falls back to the view name.
//
// # Key Bindings
//
//   - a: Edit backend address (enter to apply and retest, esc to cancel)
//   - t: Test connection
//   - s: Load sample data
//   - g: Generate timetable
//   - v: Reload timetable without regenerating
//   - r: Quick run (test, seed, generate)
//   - u: Upload a CSV or Excel file
//   - d: Cycle day presets
//   - l or Tab: Toggle timetable/log view
//   - j/k, PgUp/PgDn, Home/End: Scroll
//   - T: Cycle theme
//   - h or ?: Help
//   - q or Ctrl+C: Quit
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Runner:  controller,
//		Store:   store,
//		Days:    "Mon,Tue,Wed,Thu,Fri",
//		LogPath: cfg.LogFile,
//	})
package ui
