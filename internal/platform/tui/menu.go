package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// MenuChoice is what the user picked on the title menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceRuns
	MenuChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: MenuChoicePlay, Title: "Play"},
	{Choice: MenuChoiceRuns, Title: "Recorded runs"},
	{Choice: MenuChoiceQuit, Title: "Quit"},
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model. player is shown in the greeting
// when set.
func NewMenuModel(player string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
		if m.selected == MenuChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit // Exit menu to start the selection
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  F L A P P Y  ", m.width))
	b.WriteString("\n\n")

	subtitle := "Fly between the pipes"
	if m.player != "" {
		subtitle = fmt.Sprintf("Welcome, %s", m.player)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or MenuChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(player string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(player, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Selected(), Config: m.Config()}, nil
}
