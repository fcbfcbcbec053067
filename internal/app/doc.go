// Package app is the composition root for slotboard.
//
// Setup loads configuration, opens the zerolog sink and wires the pieces
// shared by the TUI and the CLI subcommands:
//
//  1. config.Load reads ~/.config/slotboard/config.toml plus SLOTBOARD_*
//     environment overrides
//  2. an endpoint.Prober checks candidates with backend.EnsureOK, so a failed
//     health check carries the backend's "detail" text
//  3. an endpoint.Resolver owns the resolved base and reports each success to
//     the state.Store
//  4. a backend.Client resolves its base through the resolver on every call
//  5. a command.Controller runs actions behind the store's busy gate
//
// Run adds the interactive pieces: the saved day preset, a warning when
// page_url is a file: URL, a background health check so the first action
// does not pay for probing, and a config watcher that re-resolves when
// api_url changes on disk. It then hands control to ui.Run until the user
// quits or the context is cancelled.
package app
