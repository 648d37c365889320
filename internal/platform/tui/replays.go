package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/storage"
)

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Verify, k.Delete, k.Quit}}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayListModel is the Bubble Tea model for browsing the replay journal.
type ReplayListModel struct {
	replays  []storage.Replay
	table    table.Model
	help     help.Model
	keys     ReplayKeyMap
	width    int
	height   int
	selected int64
	quitting bool

	// remove deletes a replay from the journal. Nil disables deletion.
	remove func(id int64) error
	status string
}

// NewReplayListModel creates a replay browser over the given headers.
func NewReplayListModel(replays []storage.Replay, width, height int) ReplayListModel {
	m := ReplayListModel{
		replays: replays,
		help:    help.New(),
		keys:    DefaultReplayKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.table.SetRows(replayRows(replays))
	return m
}

// WithDelete enables the delete key. fn removes the replay from storage.
func (m ReplayListModel) WithDelete(fn func(id int64) error) ReplayListModel {
	m.remove = fn
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplayListModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 16},
		{Title: "Seed", Width: 20},
		{Title: "Score", Width: 7},
		{Title: "Kills", Width: 7},
		{Title: "Lost", Width: 5},
		{Title: "Ticks", Width: 8},
		{Title: "Phase", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// replayRows formats replay headers as table rows.
func replayRows(replays []storage.Replay) []table.Row {
	rows := make([]table.Row, len(replays))
	for i, r := range replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("Jan 02 15:04"),
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.LivesLost),
			strconv.Itoa(r.Ticks),
			r.FinalPhase,
		}
	}
	return rows
}

// Init initializes the replay browser.
func (m ReplayListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			if i := m.table.Cursor(); i >= 0 && i < len(m.replays) {
				m.selected = m.replays[i].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(replayRows(m.replays))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the replay under the cursor from storage and
// from the list.
func (m *ReplayListModel) deleteSelected() {
	i := m.table.Cursor()
	if m.remove == nil || i < 0 || i >= len(m.replays) {
		return
	}
	id := m.replays[i].ID
	if err := m.remove(id); err != nil {
		m.status = fmt.Sprintf("Could not delete replay %d: %v", id, err)
		return
	}

	m.replays = append(m.replays[:i:i], m.replays[i+1:]...)
	m.table.SetRows(replayRows(m.replays))
	if i >= len(m.replays) && i > 0 {
		m.table.SetCursor(i - 1)
	}
	m.status = fmt.Sprintf("Deleted replay %d", id)
}

// View renders the replay browser.
func (m ReplayListModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("REPLAYS (%d)", len(m.replays))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nPlay a game to record one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the ID picked for verification, or 0.
func (m ReplayListModel) Selected() int64 {
	return m.selected
}

// RunReplayList shows the replay browser. It returns the ID the user chose
// to verify, or 0 when they quit. Deleted replays are removed from store.
func RunReplayList(store *storage.Store, replays []storage.Replay, width, height int) (int64, error) {
	m := NewReplayListModel(replays, width, height).WithDelete(store.DeleteReplay)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	final, ok := finalModel.(ReplayListModel)
	if !ok {
		return 0, nil
	}
	return final.Selected(), nil
}
