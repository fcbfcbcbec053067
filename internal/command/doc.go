// Package command turns user intents into backend calls.
//
// A Controller holds the endpoint resolver, the backend API and the shared
// state.Store. Every UI key, CLI subcommand, the startup health check and
// the config watcher go through Execute with a typed Request:
//
//   - test: drop the cached base and probe candidates afresh
//   - seed: load the backend's sample data
//   - generate: ask for a timetable over the chosen days, then fetch and
//     project it
//   - show: fetch and project without regenerating
//   - quickrun: test, seed and generate in sequence, posting progress
//     notices; the first failure stops the run
//   - upload: send a CSV or Excel file as multipart field "file"
//
// Execute holds the store's busy gate for the whole action, so at most one
// runs at a time; a second caller gets ErrBusy back immediately. The outcome
// message is recorded as a notice and, for grid-producing actions, the
// projected grid is stored for display.
package command
