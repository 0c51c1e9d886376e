package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"burrow/internal/listing"
	"burrow/internal/utils"
	"burrow/internal/viewport"
)

var (
	breadcrumbStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	directoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	linkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	hiddenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	unknownStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	debugStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// View renders the two panes and the info column. Pure function of the
// model: it never mutates state or triggers classification.
func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	infoLines := m.infoLines()
	rows := m.listRows()
	parentW, currentW, infoW := columnWidths(m.width)

	n := len(m.current)
	if len(m.parent) > n {
		n = len(m.parent)
	}
	if len(infoLines) > n {
		n = len(infoLines)
	}

	from, to := viewport.Window(n, rows, m.cursor)

	var b strings.Builder
	b.WriteString(breadcrumbStyle.Render(m.currentDir))
	b.WriteString("\n")

	for i, line := 0, from; line < to; i, line = i+1, line+1 {
		arrow := "  "
		if line == m.cursor {
			arrow = "->"
		}

		info := ""
		if i < len(infoLines) {
			info = infoLines[i]
		}

		fmt.Fprintf(&b, "%s | %s %s | %s\n",
			renderEntry(m.parent, line, parentW),
			arrow,
			renderEntry(m.current, line, currentW),
			infoStyle.Render(utils.PadTruncate(info, infoW)))
	}

	b.WriteString("\n")

	if m.mode == modeFilter {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	for _, line := range m.debug {
		b.WriteString(debugStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// listRows is the visible row capacity: terminal rows minus fixed chrome
// minus the current debug and filter lines, never negative.
func (m *model) listRows() int {
	rows := m.height - chromeRows - len(m.debug)
	if m.mode == modeFilter {
		rows--
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

// columnWidths derives the three cell widths from the terminal width after
// subtracting the fixed separators and selection arrow: roughly 20% parent,
// 40% current, the rest info.
func columnWidths(width int) (parent, current, info int) {
	const separators = 9 // " | " + arrow + " " + " | "
	usable := width - separators
	if usable < 3 {
		return 1, 1, 1
	}
	parent = usable * 20 / 100
	current = usable * 40 / 100
	info = usable - parent - current
	if parent < 1 {
		parent = 1
	}
	if current < 1 {
		current = 1
	}
	return parent, current, info
}

// renderEntry formats one pane cell at an exact width, colored by entry
// kind; rows past the end of the listing render as blank cells.
func renderEntry(entries []listing.Entry, idx, width int) string {
	if idx < 0 || idx >= len(entries) {
		return utils.PadTruncate("", width)
	}

	e := entries[idx]
	cell := utils.PadTruncate(e.Name, width)

	switch {
	case strings.HasPrefix(e.Name, "."):
		return hiddenStyle.Render(cell)
	case e.Kind == listing.Directory:
		return directoryStyle.Render(cell)
	case e.Kind == listing.Symlink:
		return linkStyle.Render(cell)
	case e.Kind == listing.Unknown:
		return unknownStyle.Render(cell)
	default:
		return cell
	}
}
