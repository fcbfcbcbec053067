package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/slotboard/internal/command"
)

var errNoFile = errors.New("no file chosen")

// beginInput focuses the text field for mode, prefilled with value.
func (m *Model) beginInput(mode inputMode, value string) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch mode {
	case inputUpload:
		m.input.Placeholder = "path to a CSV or Excel file"
	default:
		m.input.Placeholder = "auto-detect"
	}
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Placeholder = ""
}

// handleInputKey routes keys to the focused field. Enter commits, esc
// cancels.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.endInput()
		m.input.SetValue(m.addressText())
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.endInput()
		switch mode {
		case inputAddress:
			if m.runner == nil {
				return m, nil
			}
			m.runner.SetAddress(value)
			m.input.SetValue(m.addressText())
			// A confirmed address is retested right away.
			return m, m.dispatch(command.Request{Action: command.ActionTest})
		case inputUpload:
			m.input.SetValue(m.addressText())
			if value == "" {
				if m.store != nil {
					m.store.Notify("Choose a file first", errNoFile)
					return m, fetchSnapshotCmd(m.store)
				}
				return m, nil
			}
			return m, m.dispatch(command.Request{Action: command.ActionUpload, Path: value})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) addressText() string {
	if m.runner == nil {
		return ""
	}
	return m.runner.Address()
}
