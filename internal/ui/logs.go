package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/slotboard/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// readLogsCmd tails the slotboard log file off the UI goroutine.
func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogFetchLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

// updateLogViewport renders the buffered lines, keeping the view pinned to
// the bottom when it already was.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0

	var b strings.Builder
	switch {
	case m.logErr != nil:
		b.WriteString(styles.DangerText.Render("Cannot read log: " + m.logErr.Error()))
	case len(m.logLines) == 0:
		b.WriteString(styles.MutedText.Render("No log output yet."))
	default:
		for i, raw := range m.logLines {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(m.formatLogLine(logtail.Parse(raw), styles))
		}
	}
	m.logViewport.SetContent(b.String())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) formatLogLine(line logtail.Line, styles Styles) string {
	if line.Level == "" {
		return styles.Text.Render(line.Raw)
	}
	return styles.LevelStyle(strings.ToLower(line.Level)).Render(line.Format())
}
