package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folderdock/internal/model"
)

var (
	bgColor     = lipgloss.Color("#383843")
	fgColor     = lipgloss.Color("#EDEDF3")
	accentColor = lipgloss.Color("#8A7BDE")
	dimColor    = lipgloss.Color("#9A9AAD")
	errColor    = lipgloss.Color("#E06C75")

	appStyle      = lipgloss.NewStyle().Background(bgColor).Foreground(fgColor).Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Background(bgColor).Foreground(fgColor).Bold(true)
	dimStyle      = lipgloss.NewStyle().Background(bgColor).Foreground(dimColor)
	errorStyle    = lipgloss.NewStyle().Background(bgColor).Foreground(errColor)
	cellStyle     = lipgloss.NewStyle().Background(bgColor).Foreground(fgColor).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Background(accentColor).Foreground(lipgloss.Color("#1E1E28")).Bold(true).Padding(0, 1)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("fdock - " + m.folderName))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(m.spinner.View())
		b.WriteString(dimStyle.Render(" Scanning folder..."))
	case len(m.entries) == 0:
		b.WriteString(dimStyle.Render("This folder is empty."))
	default:
		b.WriteString(m.renderGrid())
		b.WriteString("\n\n")
		b.WriteString(m.renderPreview())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return appStyle.Render(b.String())
}

func (m Model) renderGrid() string {
	cellW := m.cellWidth()
	var rows []string
	for start := 0; start < len(m.entries); start += gridColumns {
		end := start + gridColumns
		if end > len(m.entries) {
			end = len(m.entries)
		}
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCell(i, cellW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCell(i, width int) string {
	st := cellStyle
	if i == m.selected {
		st = selectedStyle
	}
	return st.Width(width).Render(cellLabel(m.entries[i], width-2))
}

func cellLabel(e model.Entry, width int) string {
	switch v := e.(type) {
	case model.Item:
		return truncate(filepath.Base(v.Path), width)
	case model.ReadError:
		return truncate("! read error", width)
	}
	return ""
}

// renderPreview shows the selected entry in full: the icon as block art
// with the whole path, or the complete error message.
func (m Model) renderPreview() string {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return ""
	}
	switch v := m.entries[m.selected].(type) {
	case model.Item:
		art := halfBlocks(v.Icon, previewSize)
		if art == "" {
			return dimStyle.Render(v.Path)
		}
		return art + "\n" + dimStyle.Render(v.Path)
	case model.ReadError:
		return errorStyle.Render(v.Message)
	}
	return ""
}

func (m Model) helpLine() string {
	if !m.loaded {
		return "q quits"
	}
	return fmt.Sprintf("%d entries  |  arrows move  |  enter opens  |  o shows folder  |  q quits", len(m.entries))
}

func (m Model) cellWidth() int {
	if m.width <= 0 {
		return 14
	}
	w := (m.width - 6) / gridColumns
	if w < 8 {
		w = 8
	}
	if w > 22 {
		w = 22
	}
	return w
}

func truncate(s string, max int) string {
	if max < 1 {
		max = 1
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
