// Package logtail reads and formats slotboard's own log file for the TUI's
// log pane.
//
// Read extracts the last maxLines from a file with a ring buffer of size
// maxLines: one sequential pass, O(maxLines) memory, lines returned in file
// order. A missing file is not an error; the log may simply not exist yet.
//
// Parse decodes zerolog's JSON records and Line.Format renders them as
//
//	15:04:05 INF [probe] backend reachable attempt=2 base=http://127.0.0.1:8000
//
// Extra fields are printed sorted by key so output is stable between
// refreshes. Lines that are not JSON are shown unchanged.
package logtail
