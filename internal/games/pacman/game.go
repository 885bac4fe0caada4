// Package pacman implements the maze chase: the player clears pellets while
// four ghosts hunt it under a shared scatter/chase/frightened schedule.
package pacman

import (
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// Variant selects the game rules.
type Variant string

const (
	// VariantClassic ends in victory when the maze is cleared.
	VariantClassic Variant = "classic"
	// VariantMarathon refills the maze and speeds the ghosts up on every
	// clear, until the lives run out.
	VariantMarathon Variant = "marathon"
)

// minStepInterval bounds actor speed so a tick never loops forever.
const minStepInterval = 0.01

// Package-level variables for config/difficulty, set by the CLI before the
// registry creates a game.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game implements the pacman game.
type Game struct {
	variant Variant

	cfg        config.PacmanConfig
	fixedCfg   bool // set by NewWithConfig; Reset does not reload
	cfgErr     error
	preset     string // overrides difficultyPreset when hasPreset
	hasPreset  bool
	difficulty *config.DifficultyManager
	targeting  ghost.TargetingConfig

	rng    *rand.Rand
	bus    *Bus
	maze   *maze.Maze
	modes  *ghost.ModeController
	player player
	ghosts [4]*actor

	tick     uint64
	tickRate int
	dt       float64
	elapsed  float64 // seconds since the current life started

	score            int
	lives            int
	level            int
	extraLifeAwarded bool
	combo            int // ghosts eaten in the current frightened period

	phase    Phase
	paused   bool
	freeze   float64 // seconds left in a death or level-clear pause
	tooSmall bool
	screenW  int
	screenH  int
}

// New creates a classic single-maze game.
func New() *Game {
	return newGame(VariantClassic)
}

// NewMarathon creates a game whose maze refills after every clear.
func NewMarathon() *Game {
	return newGame(VariantMarathon)
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration files.
func NewWithConfig(v Variant, cfg config.PacmanConfig) *Game {
	g := newGame(v)
	g.cfg = cfg
	g.fixedCfg = true
	return g
}

func newGame(v Variant) *Game {
	return &Game{
		variant: v,
		cfg:     config.DefaultPacmanConfig(),
		bus:     NewBus(),
		maze:    maze.NewClassic(),
		modes:   ghost.NewModeController(ghost.DefaultSchedule()),
	}
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
	registry.Register("pacman_marathon", func() registry.Game {
		return NewMarathon()
	})
}

// SetDifficulty selects the difficulty preset for this game only, taking
// effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = preset
	g.hasPreset = true
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantMarathon {
		return "pacman_marathon"
	}
	return "pacman"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantMarathon {
		return "Pac-Man (Marathon)"
	}
	return "Pac-Man"
}

// Events returns the bus the game publishes on. It survives Reset.
func (g *Game) Events() *Bus {
	return g.bus
}

// ConfigError returns the problem found while loading configuration on the
// last Reset, if any. The game falls back to defaults in that case.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Config returns the configuration in effect.
func (g *Game) Config() config.PacmanConfig {
	return g.cfg
}

// Maze returns the live maze. Callers on other goroutines must not use it.
func (g *Game) Maze() *maze.Maze {
	return g.maze
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.tickRate = rc.TickRate
	g.dt = rc.TickSeconds()
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.targeting = ghost.TargetingConfig{
		PinkAhead:         g.cfg.Targeting.PinkAhead,
		BlueAhead:         g.cfg.Targeting.BlueAhead,
		OrangeShyDistance: g.cfg.Targeting.OrangeShyDistance,
		Corners:           g.cfg.Corners.Array(),
	}
	g.maze = g.buildMaze()

	g.score = 0
	g.lives = g.cfg.Lives.Start
	g.level = 1
	g.extraLifeAwarded = false
	g.paused = false
	g.freeze = 0
	g.phase = ""
	g.tooSmall = g.screenTooSmall()

	g.startLevel()
	g.setPhase(PhasePlaying)
	g.publishPlayer()
}

// loadConfig refreshes the configuration from disk and applies the
// difficulty preset. Problems are kept for ConfigError and the defaults
// are used instead.
func (g *Game) loadConfig() {
	g.cfgErr = nil
	if g.fixedCfg {
		return
	}

	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		g.cfgErr = err
		cfg = config.DefaultPacmanConfig()
	}
	name := difficultyPreset
	if g.hasPreset {
		name = g.preset
	}
	preset, err := config.ParsePreset(name)
	if err != nil && g.cfgErr == nil {
		g.cfgErr = err
	}
	config.ApplyPacmanPreset(&cfg, preset)
	g.cfg = cfg
}

func (g *Game) buildMaze() *maze.Maze {
	if len(g.cfg.Maze.Layout) == 0 {
		return maze.NewClassic()
	}
	m, err := maze.New(g.cfg.Maze.Layout)
	if err != nil {
		if g.cfgErr == nil {
			g.cfgErr = err
		}
		return maze.NewClassic()
	}
	return m
}

func (g *Game) progress() config.Progress {
	return config.Progress{Level: g.level, Score: g.score, Ticks: int(g.tick)}
}

func (g *Game) schedule() ghost.Schedule {
	return ghost.Schedule{
		Scatter:            g.cfg.Waves.Scatter,
		Chase:              g.cfg.Waves.Chase,
		FrightenedDuration: g.difficulty.FrightenedDuration(g.cfg.Timing.Frightened, g.progress()),
		WarningTime:        g.cfg.Timing.FrightenedWarning,
	}
}

// startLevel refills the maze and puts everyone back at their start.
func (g *Game) startLevel() {
	g.maze.Initialize()
	g.modes = ghost.NewModeController(g.schedule())
	g.resetActors()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.phase.IsOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.phase.IsOver() {
		from := g.Phase()
		g.paused = !g.paused
		g.bus.Publish(GameStateChanged{From: from, To: g.Phase()})
	}

	if g.phase.IsOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if d := input.Direction(); d != core.DirNone {
		g.player.queued = d
	}

	switch g.phase {
	case PhaseDying:
		g.freeze -= g.dt
		if g.freeze <= 0 {
			before := g.modes.Mode()
			g.resetActors()
			g.publishModeReset(before)
			g.setPhase(PhasePlaying)
		}
		return core.StepResult{State: g.State()}

	case PhaseLevelCleared:
		g.freeze -= g.dt
		if g.freeze <= 0 {
			g.nextLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.advance(g.dt)
	return core.StepResult{State: g.State()}
}

// advance runs dt seconds of play: timers, then the player, then the
// ghosts, then collisions.
func (g *Game) advance(dt float64) {
	g.elapsed += dt

	before := g.modes.Mode()
	g.modes.Update(dt)
	if after := g.modes.Mode(); after != before {
		if before == ghost.Frightened {
			for _, a := range g.ghosts {
				a.frightened = false
			}
			g.combo = 0
		}
		g.bus.Publish(GhostModeChanged{From: before, To: after})
		if before == ghost.Frightened {
			g.publishPlayer()
		}
	}
	if g.modes.ShouldReverseDirection() {
		g.reverseGhosts()
	}
	g.releaseGhosts()

	playerFrom := g.player.pos
	var ghostFrom [4]core.Point
	for i, a := range g.ghosts {
		ghostFrom[i] = a.pos
	}

	g.player.timer += dt
	interval := max(g.cfg.Timing.PlayerStep, minStepInterval)
	for g.player.timer >= interval {
		g.player.timer -= interval
		g.stepPlayer()
		if g.maze.PelletCount() == 0 {
			g.clearLevel()
			return
		}
	}

	for _, a := range g.ghosts {
		if a.house == houseWaiting {
			continue
		}
		a.timer += dt
		for {
			iv := g.ghostInterval(a)
			if a.timer < iv {
				break
			}
			a.timer -= iv
			g.stepGhost(a)
		}
	}

	g.checkCollisions(playerFrom, ghostFrom)
}

func (g *Game) clearLevel() {
	if g.variant != VariantMarathon {
		g.setPhase(PhaseWon)
		return
	}
	g.freeze = g.cfg.Timing.LevelPause
	g.setPhase(PhaseLevelCleared)
}

func (g *Game) nextLevel() {
	before := g.modes.Mode()
	g.level++
	g.startLevel()
	g.publishModeReset(before)
	g.bus.Publish(LevelChanged{Level: g.level})
	g.setPhase(PhasePlaying)
}

// publishModeReset reports the jump back to Scatter after the controller
// was reset.
func (g *Game) publishModeReset(before ghost.Mode) {
	if after := g.modes.Mode(); after != before {
		g.bus.Publish(GhostModeChanged{From: before, To: after})
	}
}

// Phase returns the current coarse state, including pause and the
// window-too-small condition.
func (g *Game) Phase() Phase {
	switch {
	case g.phase.IsOver():
		return g.phase
	case g.tooSmall:
		return PhaseTooSmall
	case g.paused:
		return PhasePaused
	default:
		return g.phase
	}
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	from := g.Phase()
	g.phase = p
	g.bus.Publish(GameStateChanged{From: from, To: g.Phase()})
}

// Resize adapts to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = g.screenTooSmall()
}

func (g *Game) screenTooSmall() bool {
	bw, bh := g.boardSize()
	return g.screenW < bw || g.screenH < bh+hudHeight
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		GameOver: g.phase.IsOver(),
		Won:      g.phase == PhaseWon,
		Paused:   g.paused,
	}
}
