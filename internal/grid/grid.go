package grid

import "strings"

// DefaultDays is the day axis used when the caller supplies none.
var DefaultDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// DefaultSlots is the slot axis used when the caller supplies none: seven
// contiguous one-hour labels starting at 09:00.
var DefaultSlots = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
}

// Presets are the day axes offered for selection.
var Presets = []string{
	"Mon,Tue,Wed,Thu,Fri",
	"Mon,Tue,Wed,Thu,Fri,Sat",
	"Mon,Tue,Wed,Thu,Fri,Sat,Sun",
}

// Entry is one timetable assignment as returned by the backend.
type Entry struct {
	Day     string `json:"day"`
	Slot    string `json:"slot"`
	Course  string `json:"course"`
	Section string `json:"section"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
}

// Cell holds every entry scheduled at one (day, slot) pair in input order.
type Cell struct {
	Day     string
	Slot    string
	Entries []Entry
}

// Empty reports whether nothing is scheduled in the cell.
func (c Cell) Empty() bool { return len(c.Entries) == 0 }

// Grid is a slot × day projection of a schedule. Rows follow Slots, columns
// follow Days.
type Grid struct {
	Days  []string
	Slots []string
	Rows  [][]Cell
	// Unplaced counts entries whose day or slot is not on an axis.
	Unplaced int
}

// Cell returns the cell at the exact (day, slot) pair.
func (g Grid) Cell(day, slot string) (Cell, bool) {
	col := indexOf(g.Days, day)
	row := indexOf(g.Slots, slot)
	if col < 0 || row < 0 {
		return Cell{}, false
	}
	return g.Rows[row][col], true
}

// Populated returns the number of non-empty cells.
func (g Grid) Populated() int {
	n := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}

// Project groups entries by (day, slot) and lays them out row by row in slot
// order, column by column in day order. Entries sharing a cell keep their
// relative input order. Empty axes fall back to DefaultDays/DefaultSlots.
func Project(entries []Entry, days, slots []string) Grid {
	if len(days) == 0 {
		days = DefaultDays
	}
	if len(slots) == 0 {
		slots = DefaultSlots
	}

	byKey := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		k := key(e.Day, e.Slot)
		byKey[k] = append(byKey[k], e)
	}

	g := Grid{
		Days:  append([]string(nil), days...),
		Slots: append([]string(nil), slots...),
		Rows:  make([][]Cell, len(slots)),
	}
	for r, slot := range slots {
		row := make([]Cell, len(days))
		for c, day := range days {
			row[c] = Cell{Day: day, Slot: slot, Entries: byKey[key(day, slot)]}
		}
		g.Rows[r] = row
	}
	for _, e := range entries {
		if indexOf(days, e.Day) < 0 || indexOf(slots, e.Slot) < 0 {
			g.Unplaced++
		}
	}
	return g
}

// ParseDays splits a comma-separated day list, trimming blanks.
func ParseDays(preset string) []string {
	var out []string
	for _, part := range strings.Split(preset, ",") {
		if day := strings.TrimSpace(part); day != "" {
			out = append(out, day)
		}
	}
	return out
}

func key(day, slot string) string {
	return day + "|" + slot
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
