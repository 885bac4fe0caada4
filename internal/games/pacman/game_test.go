package pacman

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// testLayout is a ring corridor around a sealed pocket that holds the
// ghosts. With huge release delays they never move.
var testLayout = []string{
	"##########",
	"#o.......#",
	"#.######.#",
	"#.#____#.#",
	"#.######.#",
	"# .......#",
	"##########",
}

func testConfig() config.PacmanConfig {
	cfg := config.DefaultPacmanConfig()
	cfg.Maze.Layout = testLayout
	cfg.Maze.PlayerStart = core.Pt(1, 5)
	cfg.House = config.HouseConfig{
		Center: core.Pt(4, 3),
		Exit:   core.Pt(4, 1),
		Starts: config.GhostPoints{
			Red:    core.Pt(3, 3),
			Pink:   core.Pt(4, 3),
			Blue:   core.Pt(5, 3),
			Orange: core.Pt(6, 3),
		},
		ReleaseDelays: []float64{1e6, 1e6, 1e6, 1e6},
	}
	cfg.Elroy.Enabled = false
	return cfg
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 36, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, v Variant, mutate func(*config.PacmanConfig)) *Game {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := NewWithConfig(v, cfg)
	g.Reset(runtimeConfig(1))
	if err := g.ConfigError(); err != nil {
		t.Fatalf("ConfigError() = %v", err)
	}
	return g
}

// run steps the game n ticks, sending actions on the first tick only.
func run(g *Game, n int, actions ...core.Action) {
	in := core.NewInputFrame()
	for i := range n {
		in.Clear()
		if i == 0 {
			for _, a := range actions {
				in.Set(a)
			}
		}
		g.Step(in)
	}
}

func record(g *Game) *[]Event {
	events := &[]Event{}
	g.Events().Subscribe(func(e Event) {
		*events = append(*events, e)
	})
	return events
}

func countKind(events []Event, kind string) int {
	n := 0
	for _, e := range events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// clearAllBut removes every pellet except the one at keep.
func clearAllBut(g *Game, keep core.Point) {
	for _, p := range g.maze.PelletPositions() {
		if p != keep {
			g.maze.SetTileAt(p, maze.Path)
		}
	}
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	s := g.Snapshot()

	if s.Phase != PhasePlaying {
		t.Errorf("Phase = %v, expected playing", s.Phase)
	}
	if s.Lives != 3 || s.Score != 0 || s.Level != 1 {
		t.Errorf("lives/score/level = %d/%d/%d, expected 3/0/1", s.Lives, s.Score, s.Level)
	}
	if s.PelletsLeft != 21 {
		t.Errorf("PelletsLeft = %d, expected 21", s.PelletsLeft)
	}
	if s.Player != core.Pt(1, 5) {
		t.Errorf("Player = %v, expected (1,5)", s.Player)
	}
	if s.Mode != ghost.Scatter {
		t.Errorf("Mode = %v, expected scatter", s.Mode)
	}
	for _, gs := range s.Ghosts {
		if !gs.InHouse {
			t.Errorf("%v starts outside the house", gs.Type)
		}
	}
}

func TestEatPellets(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	run(g, 60, core.ActionRight)

	s := g.Snapshot()
	if s.Player != core.Pt(8, 5) {
		t.Errorf("Player = %v, expected (8,5)", s.Player)
	}
	if s.Score != 70 {
		t.Errorf("Score = %d, expected 70", s.Score)
	}
	if s.PelletsLeft != 14 {
		t.Errorf("PelletsLeft = %d, expected 14", s.PelletsLeft)
	}
	if n := countKind(*events, "tile_updated"); n != 7 {
		t.Errorf("tile_updated events = %d, expected 7", n)
	}
	if g.maze.TileAt(core.Pt(2, 5)) != maze.Path {
		t.Errorf("eaten tile = %v, expected path", g.maze.TileAt(core.Pt(2, 5)))
	}
}

func TestBufferedTurn(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)

	// Up is legal at once from the start tile; the player then follows the
	// left column to the power pellet.
	run(g, 35, core.ActionUp)

	if s := g.Snapshot(); s.Player != core.Pt(1, 1) || s.Facing != core.DirUp {
		t.Errorf("Player = %v facing %v, expected (1,1) facing up", s.Player, s.Facing)
	}
}

func TestPowerPelletFrightensGhosts(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	run(g, 35, core.ActionUp)

	s := g.Snapshot()
	if s.Score != 80 {
		t.Errorf("Score = %d, expected 80", s.Score)
	}
	if s.Mode != ghost.Frightened {
		t.Fatalf("Mode = %v, expected frightened", s.Mode)
	}
	if s.Frightened <= 5 || s.Frightened > 6 {
		t.Errorf("Frightened = %v, expected just under 6", s.Frightened)
	}
	for _, gs := range s.Ghosts {
		if !gs.Frightened {
			t.Errorf("%v not frightened", gs.Type)
		}
	}

	found := false
	for _, e := range *events {
		if mc, ok := e.(GhostModeChanged); ok && mc.To == ghost.Frightened {
			found = true
		}
	}
	if !found {
		t.Error("no GhostModeChanged event to frightened")
	}

	// Fright runs out and the wave schedule resumes.
	run(g, 6*60)
	s = g.Snapshot()
	if s.Mode != ghost.Scatter {
		t.Errorf("Mode after fright = %v, expected scatter", s.Mode)
	}
	for _, gs := range s.Ghosts {
		if gs.Frightened {
			t.Errorf("%v still frightened", gs.Type)
		}
	}
}

func TestPowerPelletReversesRoamingGhosts(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	red := g.ghosts[ghost.Red]
	red.house = houseOut
	red.pos = core.Pt(8, 2)
	red.facing = core.DirDown

	g.frighten()

	if red.facing != core.DirUp {
		t.Errorf("red facing = %v, expected up", red.facing)
	}
	if pink := g.ghosts[ghost.Pink]; pink.facing != core.DirUp {
		t.Errorf("waiting pink facing = %v, expected unchanged up", pink.facing)
	}
}

func TestEatGhostsDoublesScore(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)
	run(g, 35, core.ActionUp)
	base := g.score

	for _, typ := range []ghost.Type{ghost.Pink, ghost.Blue, ghost.Orange} {
		a := g.ghosts[typ]
		a.house = houseOut
		a.pos = g.player.pos
		run(g, 1)
		if !a.eaten {
			t.Fatalf("%v not eaten", typ)
		}
	}

	if got := g.score - base; got != 200+400+800 {
		t.Errorf("ghost points = %d, expected 1400", got)
	}

	var combos []int
	for _, e := range *events {
		if ge, ok := e.(GhostEaten); ok {
			combos = append(combos, ge.Combo)
		}
	}
	if len(combos) != 3 || combos[0] != 1 || combos[2] != 3 {
		t.Errorf("GhostEaten combos = %v, expected [1 2 3]", combos)
	}
}

func TestGhostComboResetsWithNewPowerPellet(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	run(g, 35, core.ActionUp)

	pink := g.ghosts[ghost.Pink]
	pink.house = houseOut
	pink.pos = g.player.pos
	run(g, 1)

	g.frighten()
	blue := g.ghosts[ghost.Blue]
	blue.house = houseOut
	blue.pos = g.player.pos
	before := g.score
	run(g, 1)

	if got := g.score - before; got != 200 {
		t.Errorf("first ghost of a new period = %d points, expected 200", got)
	}
}

func TestGhostCatchesPlayer(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	red := g.ghosts[ghost.Red]
	red.house = houseOut
	red.pos = g.player.pos
	run(g, 1)

	if g.lives != 2 {
		t.Errorf("lives = %d, expected 2", g.lives)
	}
	if g.Phase() != PhaseDying {
		t.Fatalf("Phase() = %v, expected dying", g.Phase())
	}
	var died *PlayerDied
	for _, e := range *events {
		if pd, ok := e.(PlayerDied); ok {
			died = &pd
		}
	}
	if died == nil || died.By != ghost.Red || died.LivesLeft != 2 {
		t.Errorf("PlayerDied = %+v, expected by red with 2 lives left", died)
	}

	// The board resets after the death pause.
	run(g, 95)
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", g.Phase())
	}
	red = g.ghosts[ghost.Red]
	if red.pos != core.Pt(3, 3) || red.house != houseWaiting {
		t.Errorf("red at %v, expected back in the house at (3,3)", red.pos)
	}
	if g.player.pos != core.Pt(1, 5) {
		t.Errorf("player = %v, expected back at (1,5)", g.player.pos)
	}
}

func TestCrossingCollides(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	red := g.ghosts[ghost.Red]
	red.house = houseOut
	others := func() [4]core.Point {
		return [4]core.Point{{}, g.ghosts[1].pos, g.ghosts[2].pos, g.ghosts[3].pos}
	}

	// Player (1,5)->(2,5), red (4,5)->(3,5): adjacent, no contact.
	g.player.pos = core.Pt(2, 5)
	red.pos = core.Pt(3, 5)
	from := others()
	from[ghost.Red] = core.Pt(4, 5)
	g.checkCollisions(core.Pt(1, 5), from)
	if g.lives != 3 {
		t.Fatalf("lives = %d, expected 3 without contact", g.lives)
	}

	// Player (1,5)->(2,5), red (2,5)->(1,5): they swapped tiles.
	red.pos = core.Pt(1, 5)
	from[ghost.Red] = core.Pt(2, 5)
	g.checkCollisions(core.Pt(1, 5), from)
	if g.lives != 2 {
		t.Errorf("lives = %d, expected 2 after crossing", g.lives)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, VariantClassic, func(c *config.PacmanConfig) { c.Lives.Start = 1 })

	red := g.ghosts[ghost.Red]
	red.house = houseOut
	red.pos = g.player.pos
	run(g, 1)

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("State() = %+v, expected game over, not won", st)
	}

	// Input is ignored after game over, except restart.
	run(g, 30, core.ActionRight)
	if g.player.pos != core.Pt(1, 5) {
		t.Errorf("player moved after game over: %v", g.player.pos)
	}

	run(g, 1, core.ActionRestart)
	st = g.State()
	if st.GameOver || st.Lives != 1 || st.Score != 0 {
		t.Errorf("State() after restart = %+v", st)
	}
}

func TestClassicVictory(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	clearAllBut(g, core.Pt(2, 5))

	run(g, 10, core.ActionRight)

	st := g.State()
	if !st.Won || !st.GameOver {
		t.Errorf("State() = %+v, expected won", st)
	}
	if st.Score != 10 {
		t.Errorf("Score = %d, expected 10", st.Score)
	}
}

func TestMarathonNextLevel(t *testing.T) {
	g := newTestGame(t, VariantMarathon, nil)
	events := record(g)
	clearAllBut(g, core.Pt(2, 5))

	run(g, 10, core.ActionRight)
	if g.Phase() != PhaseLevelCleared {
		t.Fatalf("Phase() = %v, expected level_cleared", g.Phase())
	}
	if g.State().GameOver {
		t.Error("marathon should not end on a clear")
	}

	run(g, 125)

	s := g.Snapshot()
	if s.Level != 2 || s.Phase != PhasePlaying {
		t.Errorf("level/phase = %d/%v, expected 2/playing", s.Level, s.Phase)
	}
	if s.PelletsLeft != 21 {
		t.Errorf("PelletsLeft = %d, expected a refilled maze of 21", s.PelletsLeft)
	}
	if s.Score != 10 {
		t.Errorf("Score = %d, expected 10 carried over", s.Score)
	}

	found := false
	for _, e := range *events {
		if lc, ok := e.(LevelChanged); ok && lc.Level == 2 {
			found = true
		}
	}
	if !found {
		t.Error("no LevelChanged event for level 2")
	}
}

func TestMarathonGhostsSpeedUp(t *testing.T) {
	g := newTestGame(t, VariantMarathon, nil)
	red := g.ghosts[ghost.Red]
	level1 := g.ghostInterval(red)

	g.level = 5
	if level5 := g.ghostInterval(red); level5 >= level1 {
		t.Errorf("ghostInterval() at level 5 = %v, expected below %v", level5, level1)
	}
}

func TestExtraLifeAwardedOnce(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)
	g.score = 9990

	run(g, 20, core.ActionRight)

	if g.score != 10010 {
		t.Fatalf("score = %d, expected 10010", g.score)
	}
	if g.lives != 4 {
		t.Errorf("lives = %d, expected 4", g.lives)
	}
	if n := countKind(*events, "extra_life"); n != 1 {
		t.Errorf("extra_life events = %d, expected 1", n)
	}
}

func TestExtraLifeRespectsMax(t *testing.T) {
	g := newTestGame(t, VariantClassic, func(c *config.PacmanConfig) { c.Lives.Start = 5 })
	g.score = 9990

	run(g, 10, core.ActionRight)

	if g.lives != 5 {
		t.Errorf("lives = %d, expected capped at 5", g.lives)
	}
}

func TestWaveScheduleDrivesMode(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	run(g, 7*60+6)

	if g.modes.Mode() != ghost.Chase {
		t.Errorf("Mode() = %v, expected chase after 7s", g.modes.Mode())
	}
	found := false
	for _, e := range *events {
		if mc, ok := e.(GhostModeChanged); ok && mc.From == ghost.Scatter && mc.To == ghost.Chase {
			found = true
		}
	}
	if !found {
		t.Error("no GhostModeChanged scatter->chase event")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	run(g, 30)
	clock := g.modes.WaveClock()

	run(g, 1, core.ActionPause)
	if g.Phase() != PhasePaused || !g.State().Paused {
		t.Fatalf("Phase() = %v, expected paused", g.Phase())
	}
	run(g, 120, core.ActionRight)
	if g.modes.WaveClock() != clock || g.player.pos != core.Pt(1, 5) {
		t.Error("simulation advanced while paused")
	}

	run(g, 1, core.ActionPause)
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", g.Phase())
	}
}

func TestElroySpeedsUpRed(t *testing.T) {
	g := newTestGame(t, VariantClassic, func(c *config.PacmanConfig) { c.Elroy.Enabled = true })
	red, pink := g.ghosts[ghost.Red], g.ghosts[ghost.Pink]

	if g.ghostInterval(red) != g.ghostInterval(pink) {
		t.Errorf("red interval %v differs from pink %v with 21 pellets", g.ghostInterval(red), g.ghostInterval(pink))
	}

	clearAllBut(g, core.Pt(2, 5))
	if g.elroyLevel() != 2 {
		t.Errorf("elroyLevel() = %d, expected 2", g.elroyLevel())
	}
	if g.ghostInterval(red) >= g.ghostInterval(pink) {
		t.Errorf("red interval %v not below pink %v", g.ghostInterval(red), g.ghostInterval(pink))
	}
}

func TestDeterminism(t *testing.T) {
	g1 := NewWithConfig(VariantClassic, config.DefaultPacmanConfig())
	g2 := NewWithConfig(VariantClassic, config.DefaultPacmanConfig())
	g1.Reset(runtimeConfig(12345))
	g2.Reset(runtimeConfig(12345))

	script := map[int]core.Action{
		10:  core.ActionUp,
		60:  core.ActionLeft,
		200: core.ActionDown,
		400: core.ActionRight,
		700: core.ActionUp,
	}
	in := core.NewInputFrame()
	for i := range 1200 {
		in.Clear()
		if a, ok := script[i]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestTunnelWrap(t *testing.T) {
	g := NewWithConfig(VariantClassic, config.DefaultPacmanConfig())
	g.Reset(runtimeConfig(7))

	g.player.pos = core.Pt(0, 14)
	g.player.facing = core.DirLeft
	run(g, 8)

	if g.player.pos != core.Pt(27, 14) {
		t.Errorf("player = %v, expected (27,14) after wrapping", g.player.pos)
	}
}

func TestGhostsLeaveHouse(t *testing.T) {
	g := NewWithConfig(VariantClassic, config.DefaultPacmanConfig())
	g.Reset(runtimeConfig(3))

	run(g, 1)
	if g.ghosts[ghost.Red].house != houseOut {
		t.Error("red should start outside the house")
	}
	if g.ghosts[ghost.Pink].house != houseWaiting {
		t.Error("pink should wait for its release delay")
	}

	run(g, 150)
	pink := g.ghosts[ghost.Pink]
	if pink.house != houseOut {
		t.Errorf("pink still in house at %v", pink.pos)
	}
	if g.maze.TileAt(pink.pos) == maze.GhostDoor {
		t.Errorf("pink parked on the door at %v", pink.pos)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	g.Resize(10, 5)

	if g.Phase() != PhaseTooSmall {
		t.Fatalf("Phase() = %v, expected too small", g.Phase())
	}
	run(g, 60, core.ActionRight)
	if g.score != 0 {
		t.Error("game advanced with a too small window")
	}

	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Render() missing too-small overlay")
	}

	g.Resize(80, 36)
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() after Resize = %v, expected playing", g.Phase())
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(VariantClassic, config.DefaultPacmanConfig())
	g.Reset(runtimeConfig(1))

	screen := core.NewScreen(80, 36)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD = %q, expected a score", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "█") {
		t.Error("Render() drew no walls")
	}

	ox := (80 - 56) / 2
	if r := screen.Get(ox+13*cellWidth, hudHeight+23); r != '>' {
		t.Errorf("player glyph = %q, expected '>'", r)
	}
	if c := screen.GetCell(ox+13*cellWidth, hudHeight+11); c.Color != core.ColorShadow {
		t.Errorf("red ghost color = %v, expected ColorShadow", c.Color)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"pacman", "pacman_marathon"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q) = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.Observable); !ok {
			t.Errorf("%s does not implement registry.Observable", id)
		}
		if _, ok := g.(registry.Resizable); !ok {
			t.Errorf("%s does not implement registry.Resizable", id)
		}
	}
}
