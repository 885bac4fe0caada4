package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// difficultyChoices is the cycle shown by the menu. The empty preset keeps
// whatever the config file says.
var difficultyChoices = append([]config.DifficultyPreset{""}, config.Presets...)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	menuArtStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one game mode on the picker.
type MenuItem struct {
	GameID string
	Title  string
	High   int
}

// MenuModel picks a game mode and a difficulty preset. It ends its program
// on select or on the scoreboard key; callers read the outcome afterwards.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int // index into difficultyChoices
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered mode with its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			item.High, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
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
		m.help.Width = msg.Width
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(difficultyChoices)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
	case MenuActionLeft:
		m.difficulty = (m.difficulty + n - 1) % n
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % n
	case MenuActionSelect:
		if m.cursor < len(m.items) {
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("P A C - M A N"),
		"",
		menuArtStyle.Render("ᗧ · · · ●   ᗣ ᗣ ᗣ ᗣ"),
		"",
	}
	for i, item := range m.items {
		label := fmt.Sprintf(" %-20s ", item.Title)
		if i == m.cursor {
			label = menuCursorStyle.Render(label)
		} else {
			label = menuItemStyle.Render(label)
		}
		best := "         "
		if item.High > 0 {
			best = fmt.Sprintf(" best %-4d", item.High)
		}
		lines = append(lines, label+menuBestStyle.Render(best))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Difficulty: < %s >", m.DifficultyName()),
		"",
		menuBestStyle.Render(m.help.View(m.keyMapper.Menu)),
	)

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Difficulty returns the selected preset, empty for the configured default.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficultyChoices[m.difficulty]
}

// DifficultyName returns the selected preset for display.
func (m MenuModel) DifficultyName() string {
	if d := m.Difficulty(); d != "" {
		return string(d)
	}
	return "config"
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left so it sits in the middle of width
// columns. Styled text is measured without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player chose on a standalone menu.
// Exactly one of GameID, WantsScoreboard and Quit is set.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config(), Difficulty: m.Difficulty()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil && !m.IsQuitting():
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
