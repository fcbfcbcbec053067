package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/slotboard/internal/command"
	"github.com/five82/slotboard/internal/grid"
	"github.com/five82/slotboard/internal/prefs"
	"github.com/five82/slotboard/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewGrid View = iota
	ViewLogs
)

// inputMode is which text field, if any, has focus.
type inputMode int

const (
	inputNone inputMode = iota
	inputAddress
	inputUpload
)

// Runner executes controller actions. *command.Controller satisfies it.
type Runner interface {
	Execute(ctx context.Context, req command.Request) command.Outcome
	Address() string
	SetAddress(typed string)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Runner    Runner
	Store     *state.Store
	Days      string // comma-separated day preset
	LogPath   string
	ThemeName string
	PrefsPath string
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	runner    Runner
	store     *state.Store
	prefsPath string
	logPath   string
	tick      time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot state.Snapshot
	days     string
	running  bool

	// Input state
	mode  inputMode
	input textinput.Model

	gridViewport viewport.Model
	logViewport  viewport.Model
	logLines     []string
	logErr       error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick == 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	days := strings.TrimSpace(opts.Days)
	if len(grid.ParseDays(days)) == 0 {
		days = grid.Presets[0]
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 512
	if opts.Runner != nil {
		input.SetValue(opts.Runner.Address())
	}

	return Model{
		ctx:         ctx,
		runner:      opts.Runner,
		store:       opts.Store,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		tick:        tick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewGrid,
		days:        days,
		input:       input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewports()
		m.ready = true
		m.updateGridViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		changed := !state.Snapshot(msg).LastUpdated.Equal(m.snapshot.LastUpdated)
		m.snapshot = state.Snapshot(msg)
		if changed {
			m.updateGridViewport()
		}
		return m, nil

	case outcomeMsg:
		m.running = false
		if m.mode != inputAddress && m.runner != nil {
			// A successful probe writes the resolved base back as the address.
			m.input.SetValue(m.runner.Address())
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.logViewport.View())
	default:
		b.WriteString(m.gridViewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter(time.Now()))
	return b.String()
}

// busy reports whether an action is in flight, either one this model
// dispatched or one started elsewhere (initial check, config watcher).
func (m Model) busy() bool {
	return m.running || m.snapshot.Busy
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateGridViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		if m.currentView == ViewLogs {
			m.currentView = ViewGrid
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGrid
		return m, nil
	}

	if cmd, handled := m.handleActionKey(msg); handled {
		return m, cmd
	}
	return m.handleScrollKey(msg)
}

// handleActionKey starts controller actions. While busy every action key is
// swallowed so that only one request runs at a time.
func (m *Model) handleActionKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	var req command.Request
	switch {
	case key.Matches(msg, m.keys.EditAddress):
		if m.busy() {
			return nil, true
		}
		address := ""
		if m.runner != nil {
			address = m.runner.Address()
		}
		return m.beginInput(inputAddress, address), true

	case key.Matches(msg, m.keys.Upload):
		if m.busy() {
			return nil, true
		}
		return m.beginInput(inputUpload, ""), true

	case key.Matches(msg, m.keys.CycleDays):
		if m.busy() {
			return nil, true
		}
		m.days = nextPreset(m.days)
		m.savePrefs()
		if m.snapshot.HasGrid {
			return m.dispatch(command.Request{Action: command.ActionShow, Days: m.dayList()}), true
		}
		return nil, true

	case key.Matches(msg, m.keys.Test):
		req = command.Request{Action: command.ActionTest}
	case key.Matches(msg, m.keys.Seed):
		req = command.Request{Action: command.ActionSeed}
	case key.Matches(msg, m.keys.Generate):
		req = command.Request{Action: command.ActionGenerate, Days: m.dayList()}
	case key.Matches(msg, m.keys.Show):
		req = command.Request{Action: command.ActionShow, Days: m.dayList()}
	case key.Matches(msg, m.keys.QuickRun):
		req = command.Request{Action: command.ActionQuickRun, Days: m.dayList()}
	default:
		return nil, false
	}
	return m.dispatch(req), true
}

// dispatch runs req on the runner in the background.
func (m *Model) dispatch(req command.Request) tea.Cmd {
	if m.runner == nil || m.busy() {
		return nil
	}
	m.running = true
	runner, ctx := m.runner, m.ctx
	return func() tea.Msg {
		return outcomeMsg(runner.Execute(ctx, req))
	}
}

func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.gridViewport
	if m.currentView == ViewLogs {
		vp = &m.logViewport
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		vp.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		vp.ViewDown()
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	}
	return m, nil
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) dayList() []string {
	return grid.ParseDays(m.days)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Days: m.days})
}

// nextPreset returns the preset after current, wrapping around. Unknown
// values restart at the first preset.
func nextPreset(current string) string {
	for i, p := range grid.Presets {
		if p == current {
			return grid.Presets[(i+1)%len(grid.Presets)]
		}
	}
	return grid.Presets[0]
}

func (m *Model) resizeViewports() {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	if !m.ready {
		m.gridViewport = viewport.New(m.width, h)
		m.logViewport = viewport.New(m.width, h)
		return
	}
	m.gridViewport.Width, m.gridViewport.Height = m.width, h
	m.logViewport.Width, m.logViewport.Height = m.width, h
}

func (m *Model) updateGridViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	if !m.snapshot.HasGrid {
		m.gridViewport.SetContent(styles.MutedText.Render(
			"No timetable yet. Press r for a quick run, or s then g to seed and generate."))
		return
	}
	content := grid.Render(m.snapshot.Grid, m.theme.GridStyles())
	if m.snapshot.Grid.Unplaced > 0 {
		content += "\n" + styles.WarningText.Render(unplacedNote(m.snapshot.Grid.Unplaced))
	}
	m.gridViewport.SetContent(content)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type outcomeMsg command.Outcome

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && m.ctx.Err() == nil {
		return err
	}
	return nil
}
