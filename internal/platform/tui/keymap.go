package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// GameKeyMap holds the in-game bindings.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding

	Screenshot key.Binding
}

// DefaultGameKeyMap binds arrows, WASD and vim keys to movement.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Pause:   key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Confirm: key.NewBinding(key.WithKeys("enter")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, k.ShortHelp(), {k.Screenshot}}
}

// MenuKeyMap holds the mode picker bindings.
type MenuKeyMap struct {
	Up             key.Binding
	Down           key.Binding
	PrevDifficulty key.Binding
	NextDifficulty key.Binding
	Select         key.Binding
	Back           key.Binding
	Scoreboard     key.Binding
	Quit           key.Binding
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/↓", "mode")),
		Down:           key.NewBinding(key.WithKeys("down", "s", "j")),
		PrevDifficulty: key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/→", "difficulty")),
		NextDifficulty: key.NewBinding(key.WithKeys("right", "d", "l")),
		Select:         key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Back:           key.NewBinding(key.WithKeys("esc", "b")),
		Scoreboard:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.PrevDifficulty, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper turns key messages into game actions and menu actions.
// Quit is matched before anything else.
type KeyMapper struct {
	Game    GameKeyMap
	Menu    MenuKeyMap
	actions []actionBinding
}

// NewKeyMapper creates a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	g := DefaultGameKeyMap()
	return &KeyMapper{
		Game: g,
		Menu: DefaultMenuKeyMap(),
		actions: []actionBinding{
			{g.Quit, core.ActionQuit},
			{g.Up, core.ActionUp},
			{g.Down, core.ActionDown},
			{g.Left, core.ActionLeft},
			{g.Right, core.ActionRight},
			{g.Confirm, core.ActionConfirm},
			{g.Back, core.ActionBack},
			{g.Pause, core.ActionPause},
			{g.Restart, core.ActionRestart},
		},
	}
}

// MapKey returns the action bound to msg and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, ab.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the action for msg in frame and reports a quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is what a key means on the mode picker.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.Menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.PrevDifficulty):
		return MenuActionLeft
	case key.Matches(msg, k.NextDifficulty):
		return MenuActionRight
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
