package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Run browser layout constants
const (
	maxRuns        = 100 // Max runs to load
	runsChrome     = 9   // Rows taken by title, stats, borders and help
	minTableHeight = 3
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Replay, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	store     *storage.Store
	player    string // only this player's runs when set
	runs      []storage.Run
	stats     storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	replayID  int64
}

// NewRunsModel creates a new run browser and loads the journal.
func NewRunsModel(store *storage.Store, player string, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := RunsModel{
		store:  store,
		player: player,
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized for the current window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Player", Width: 12},
		{Title: "Ticks", Width: 7},
		{Title: "Score", Width: 6},
		{Title: "End", Width: 5},
	}

	// Give spare width to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[2].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-runsChrome, minTableHeight)),
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

// loadRuns reads the journal and statistics.
func (m *RunsModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var runs []storage.Run
	var err error
	if m.player != "" {
		runs, err = m.store.PlayerRuns(m.player, maxRuns)
	} else {
		runs, err = m.store.RecentRuns(maxRuns)
	}
	m.loadErr = err
	m.runs = runs

	if stats, statsErr := m.store.Stats(m.player); statsErr == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Player,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Score),
			r.EndReason,
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selectedRun returns the run under the cursor.
func (m RunsModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if r, ok := m.selectedRun(); ok {
				m.replayID = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.selectedRun(); ok && m.store != nil {
				if err := m.store.DeleteRun(r.ID); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(min(cursor, max(len(m.runs)-1, 0)))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack || m.replayID != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	title := "RECORDED RUNS"
	if m.player != "" {
		title = fmt.Sprintf("RECORDED RUNS - %s", m.player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	summary := fmt.Sprintf("%d runs  %d ticks played", m.stats.Runs, m.stats.TotalTicks)
	if !m.stats.LastPlayed.IsZero() {
		summary += "  last " + m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	b.WriteString(dimStyle.Render(centerText(summary, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("error: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay a game and it will show up here!")
	}

	return m.table.View()
}

// ReplayID returns the id of the run chosen for replay, or 0.
func (m RunsModel) ReplayID() int64 {
	return m.replayID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunsResult holds the outcome of the run browser.
type RunsResult struct {
	ReplayID int64 // run to replay, 0 if none
	Back     bool
	Quit     bool
}

// RunRunsBrowser runs the recorded-runs screen.
func RunRunsBrowser(store *storage.Store, player string, width, height int) (RunsResult, error) {
	p := tea.NewProgram(
		NewRunsModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunsResult{}, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return RunsResult{Quit: true}, nil
	}

	return RunsResult{
		ReplayID: m.ReplayID(),
		Back:     m.IsGoingBack(),
		Quit:     m.IsQuitting(),
	}, nil
}
