package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ToggleLogs key.Binding
	Escape     key.Binding

	// Actions
	EditAddress key.Binding
	Test        key.Binding
	Seed        key.Binding
	Generate    key.Binding
	Show        key.Binding
	QuickRun    key.Binding
	Upload      key.Binding
	CycleDays   key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("l", "tab"),
			key.WithHelp("l/tab", "Grid/log view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / back to grid"),
		),

		EditAddress: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Edit backend address"),
		),
		Test: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Test connection"),
		),
		Seed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Load sample data"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Generate timetable"),
		),
		Show: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Reload timetable"),
		),
		QuickRun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Quick run"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload file"),
		),
		CycleDays: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Cycle days"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.EditAddress, k.Test, k.Seed, k.Generate, k.Show, k.QuickRun, k.Upload, k.CycleDays},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.ToggleLogs, k.Escape, k.CycleTheme, k.Help, k.Quit},
	}
}
