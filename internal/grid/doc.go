// Package grid projects a flat schedule into a day × slot table.
//
// Project makes a single pass over the entries, grouping them by the exact
// (day, slot) pair, then lays the cells out row by row in slot order and
// column by column in day order. Entries that share a cell (parallel
// sections, for example) stay in the order the backend returned them; nothing
// is sorted, so the same payload always renders the same way.
//
// Render draws a Grid with lipgloss for the TUI and the CLI.
package grid
