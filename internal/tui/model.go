package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folderdock/internal/model"
)

const gridColumns = 6

// Model shows one launcher folder: a spinner until the first snapshot, the
// entry grid afterwards. Snapshots arrive through the bridge; the model
// never touches the engine.
type Model struct {
	folderName string
	dir        string
	bridge     *Bridge
	open       func(string) error

	entries  []model.Entry
	loaded   bool
	selected int
	width    int
	height   int
	spinner  spinner.Model
	quitting bool
}

func NewModel(folderName, dir string, bridge *Bridge, open func(string) error) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	return Model{
		folderName: folderName,
		dir:        dir,
		bridge:     bridge,
		open:       open,
		spinner:    s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bridge.ListenCmd(),
		tea.SetWindowTitle("fdock - "+m.folderName),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StateMsg:
		m.entries = msg.Entries
		m.loaded = true
		m.selected = clamp(m.selected, 0, len(m.entries)-1)
		return m, m.bridge.ListenCmd()

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		m.selected = clamp(m.selected-1, 0, len(m.entries)-1)
		return m, nil
	case "right", "l":
		m.selected = clamp(m.selected+1, 0, len(m.entries)-1)
		return m, nil
	case "up", "k":
		m.selected = clamp(m.selected-gridColumns, 0, len(m.entries)-1)
		return m, nil
	case "down", "j":
		m.selected = clamp(m.selected+gridColumns, 0, len(m.entries)-1)
		return m, nil

	case "enter", " ":
		if it, ok := m.selectedItem(); ok && m.open != nil {
			// Launch failures are non-fatal; the entry simply stays put.
			_ = m.open(it.Path)
		}
		return m, nil

	case "o":
		if m.open != nil {
			_ = m.open(m.dir)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) selectedItem() (model.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return model.Item{}, false
	}
	it, ok := m.entries[m.selected].(model.Item)
	return it, ok
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
