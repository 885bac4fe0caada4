package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// SSHServerConfig configures the SSH front end.
type SSHServerConfig struct {
	// Address is host:port, e.g. ":23234".
	Address string

	// HostKeyPath defaults to ~/.pacman/host_key; wish generates the key
	// on first start.
	HostKeyPath string

	DBPath      string
	TickRate    int
	IdleTimeout time.Duration

	// Logger defaults to a stderr logger prefixed "pacman-ssh".
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings used by `pacman serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.pacman/scores.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer hands every SSH connection its own menu, scoreboard and game.
// All sessions share one score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server without listening yet. A score store
// that fails to open is logged and the server runs without saving runs.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pacman-ssh",
		})
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{config: cfg, logger: logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.logSessions,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey picks the host key location and makes sure its directory
// exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".pacman", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "pacman needs a terminal: connect with ssh -t")
		s.logger.Warn("session without pty", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg, sess.User())
	model.logger = s.logger.With("user", sess.User())
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		start := time.Now()
		l.Info("connected")
		next(sess)
		l.Info("disconnected", "after", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down and closes
// the score store.
func (s *SSHServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	s.logger.Info("listening", "address", s.config.Address)

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown stops accepting sessions and waits up to ten seconds for open
// ones to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is what a SessionModel is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel is the whole program of one SSH connection: the menu, the
// scoreboard and the game share a single tea.Program and switch screens
// instead of quitting.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	logger     *log.Logger
	screen     sessionScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel opens a session on the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   log.New(os.Stderr),
		menu:     NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu quits its own program on Tab and Enter; here those only
	// switch screens.
	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard.embedded = true
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}

		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()
		difficulty := string(m.menu.Difficulty())
		m.logger.Info("game started", "game", selected.GameID, "difficulty", m.menu.DifficultyName())

		gm := NewModel(game, m.store, m.config, WithDifficulty(difficulty), WithBackToMenu())
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		st := m.game.gameState
		m.logger.Info("game left", "game", m.game.game.ID(), "score", st.Score, "maze_level", st.Level)
		m.game = nil
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scoreboard.View()
	}

	return m.menu.View()
}
