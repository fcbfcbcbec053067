package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/slotboard/internal/grid"
)

// renderHeader renders the status bar: logo, backend state, days and busy
// indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{b.Render("slotboard", styles.Logo)}

	switch {
	case m.snapshot.Base != "":
		parts = append(parts, b.Render("● "+m.snapshot.Base, styles.SuccessText))
	case m.snapshot.LastError != nil:
		parts = append(parts, b.Render("● unreachable", styles.DangerText))
	default:
		parts = append(parts, b.Render("○ not connected", styles.MutedText))
	}

	label := "Days:"
	if compact {
		label = "D:"
	}
	parts = append(parts, b.Render(label, styles.MutedText)+b.Spaces(1)+
		b.Render(daysLabel(m.days), styles.Text))

	if m.snapshot.HasGrid {
		parts = append(parts, b.Render("Entries:", styles.MutedText)+b.Spaces(1)+
			b.Render(fmt.Sprintf("%d", m.snapshot.EntryCount), styles.Text))
	}

	if m.busy() {
		action := m.snapshot.Action
		if action == "" {
			action = "working"
		}
		parts = append(parts, b.Render("⟳ "+action+"...", styles.WarningText.Bold(true)))
	}

	if !compact && !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, b.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(b.Join(parts, 2))
}

// renderCommandBar renders the address field and the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Background)

	var field string
	switch m.mode {
	case inputAddress, inputUpload:
		label := "API"
		if m.mode == inputUpload {
			label = "File"
		}
		focus := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus)).Bold(true)
		field = b.Render(label+":", focus) + b.Spaces(1) + m.input.View()
	default:
		address := m.input.Value()
		if address == "" {
			address = "auto-detect"
		}
		field = b.Render("API:", styles.MutedText) + b.Spaces(1) +
			b.Render(truncateMiddle(address, 48), styles.AccentText)
	}

	hints := "a address  t test  s seed  g generate  r quick run  u upload  d days  l logs  ? help"
	if m.mode != inputNone {
		hints = "enter confirm  esc cancel"
	} else if m.busy() {
		hints = "busy, actions disabled  l logs  ? help"
	}
	return b.Fill(b.Join([]string{field, b.Render(hints, styles.FaintText)}, 3), m.width)
}

// renderFooter shows the latest notice until it expires, otherwise the
// current view name.
func (m Model) renderFooter(now time.Time) string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Surface)

	if text, isErr, ok := m.noticeAt(now); ok {
		style := styles.SuccessText
		if isErr {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).MaxHeight(1).Render(b.Render(truncate(text, m.width-2), style))
	}

	view := "Timetable"
	if m.currentView == ViewLogs {
		view = "Log: " + truncateMiddle(m.logPath, 60)
	}
	return styles.Footer.Width(m.width).MaxHeight(1).Render(b.Render(view, styles.MutedText))
}

// noticeAt returns the notice still visible at now.
func (m Model) noticeAt(now time.Time) (string, bool, bool) {
	n := m.snapshot.Notice
	if n.Expired(now, NoticeTTL) {
		return "", false, false
	}
	return firstLine(n.Text), n.IsError, true
}

// daysLabel abbreviates contiguous presets as "Mon-Fri".
func daysLabel(preset string) string {
	days := grid.ParseDays(preset)
	switch len(days) {
	case 0:
		return ""
	case 1, 2:
		return strings.Join(days, ",")
	}
	return days[0] + "-" + days[len(days)-1]
}

func unplacedNote(n int) string {
	if n == 1 {
		return "1 entry falls outside the shown days and slots"
	}
	return fmt.Sprintf("%d entries fall outside the shown days and slots", n)
}
