package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// Observer receives the observable state of a game after every tick.
type Observer interface {
	Publish(v any)
}

// Option configures a Model.
type Option func(*Model)

// WithDifficulty records the difficulty preset alongside saved runs.
func WithDifficulty(preset string) Option {
	return func(m *Model) { m.difficulty = preset }
}

// WithObserver forwards snapshots of observable games to o.
func WithObserver(o Observer) Option {
	return func(m *Model) { m.observer = o }
}

// WithBackToMenu lets B/Esc leave a paused or finished game.
func WithBackToMenu() Option {
	return func(m *Model) { m.canGoBack = true }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	difficulty string
	observer   Observer
	playTicks  int // ticks of unpaused play in the current run
	canGoBack  bool
	standalone bool // owns its tea.Program, so leaving means quitting it
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if t, ok := game.(registry.Tunable); ok && m.difficulty != "" {
		t.SetDifficulty(m.difficulty)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Game.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.canGoBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
		// Esc doubles as pause while playing
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can adapt keep their run; others restart at the new size.
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.Paused && !m.gameState.GameOver {
		m.playTicks++
	}

	if m.observer != nil {
		if o, ok := m.game.(registry.Observable); ok {
			m.observer.Publish(o.Observe())
		}
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.playTicks = 0
	m.inputFrame.Clear()
}

func (m Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	tickRate := max(m.config.TickRate, 1)
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.Run{
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		Level:      m.gameState.Level,
		Difficulty: m.difficulty,
		Won:        m.gameState.Won,
		Duration:   m.playTicks / tickRate,
	})
}

// saveScreenshot writes the current frame as plain text under
// ~/.pacman/screenshots. Failures are ignored; the game keeps running.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".pacman", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own full-screen program until the player quits or,
// with WithBackToMenu, leaves.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	m := NewModel(game, store, cfg, opts...)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
