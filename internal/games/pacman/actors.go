package pacman

import (
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
)

// player is the controllable agent.
type player struct {
	pos    core.Point
	facing core.Direction
	queued core.Direction // buffered turn, applied as soon as it is legal
	timer  float64        // seconds accumulated toward the next step
}

// houseState tracks a ghost's relation to the ghost house.
type houseState int

const (
	houseWaiting houseState = iota // inside, release timer running
	houseLeaving                   // heading for the exit through the door
	houseOut                       // roaming the maze
)

// actor is one ghost.
type actor struct {
	kind     ghost.Type
	strategy ghost.Strategy

	pos     core.Point
	facing  core.Direction
	start   core.Point
	house   houseState
	release float64 // seconds after a life starts before leaving the house

	frightened bool
	eaten      bool
	timer      float64
}

func (a *actor) state(mode ghost.Mode) ghost.State {
	return ghost.State{
		Type:       a.kind,
		Position:   a.pos,
		Facing:     a.facing,
		Mode:       mode,
		Frightened: a.frightened,
		Eaten:      a.eaten,
	}
}

func (a *actor) move(m *maze.Maze, d core.Direction) {
	if d == core.DirNone {
		return
	}
	a.pos = m.WrapPosition(a.pos.Step(d, 1))
	a.facing = d
}

func (g *Game) resetActors() {
	g.player = player{
		pos:    g.cfg.Maze.PlayerStart,
		facing: core.DirLeft,
	}

	starts := g.cfg.House.Starts.Array()
	for i, t := range ghost.Types {
		facing := core.DirUp
		if t == ghost.Red {
			facing = core.DirLeft
		}
		release := 0.0
		if i < len(g.cfg.House.ReleaseDelays) {
			release = g.cfg.House.ReleaseDelays[i]
		}
		g.ghosts[i] = &actor{
			kind:     t,
			strategy: ghost.NewStrategy(t, g.targeting),
			pos:      starts[i],
			facing:   facing,
			start:    starts[i],
			house:    houseWaiting,
			release:  release,
		}
	}

	g.elapsed = 0
	g.combo = 0
	g.modes.Reset()
}

// stepPlayer moves the player one tile and eats whatever is there.
func (g *Game) stepPlayer() {
	p := &g.player
	if p.queued != core.DirNone && g.maze.IsWalkable(g.maze.WrapPosition(p.pos.Step(p.queued, 1))) {
		p.facing = p.queued
		p.queued = core.DirNone
	}

	next := g.maze.WrapPosition(p.pos.Step(p.facing, 1))
	if !g.maze.IsWalkable(next) {
		return
	}
	p.pos = next
	g.eatAt(next)
}

func (g *Game) eatAt(p core.Point) {
	switch g.maze.TileAt(p) {
	case maze.Pellet:
		g.maze.SetTileAt(p, maze.Path)
		g.bus.Publish(TileUpdated{Position: p, Tile: maze.Path})
		g.addScore(g.cfg.Scoring.Pellet)
	case maze.PowerPellet:
		g.maze.SetTileAt(p, maze.Path)
		g.bus.Publish(TileUpdated{Position: p, Tile: maze.Path})
		g.addScore(g.cfg.Scoring.PowerPellet)
		g.frighten()
	}
}

// frighten starts a frightened period. Every ghost that is not already
// eaten turns around and becomes edible.
func (g *Game) frighten() {
	g.combo = 0
	for _, a := range g.ghosts {
		if a.eaten {
			continue
		}
		if a.house == houseOut {
			a.facing = a.facing.Opposite()
		}
	}

	d := g.difficulty.FrightenedDuration(g.cfg.Timing.Frightened, g.progress())
	if d <= 0 {
		return
	}
	before := g.modes.Mode()
	g.modes.TriggerFrightenedModeFor(d)
	for _, a := range g.ghosts {
		if !a.eaten {
			a.frightened = true
		}
	}
	if before != ghost.Frightened {
		g.bus.Publish(GhostModeChanged{From: before, To: ghost.Frightened})
	}
	g.publishPlayer()
}

// releaseGhosts lets waiting ghosts out once their delay has passed.
func (g *Game) releaseGhosts() {
	for _, a := range g.ghosts {
		if a.house != houseWaiting || g.elapsed < a.release {
			continue
		}
		if g.outside(a.pos) {
			a.house = houseOut
		} else {
			a.house = houseLeaving
		}
	}
}

// outside reports whether p is at or above the house exit row.
func (g *Game) outside(p core.Point) bool {
	return p.Y <= g.cfg.House.Exit.Y
}

// stepGhost advances one ghost by one tile.
func (g *Game) stepGhost(a *actor) {
	switch {
	case a.eaten:
		a.move(g.maze, ghost.NextDirection(g.maze, a.pos, a.facing, g.cfg.House.Center, true))
		if a.pos == g.cfg.House.Center {
			a.eaten = false
			a.frightened = false
			a.house = houseLeaving
		}

	case a.house == houseLeaving:
		a.move(g.maze, ghost.NextDirection(g.maze, a.pos, a.facing, g.cfg.House.Exit, true))
		if g.outside(a.pos) {
			a.house = houseOut
		}

	case a.frightened:
		a.move(g.maze, ghost.RandomDirection(g.maze, a.pos, a.facing, false, g.rng))

	default:
		a.move(g.maze, ghost.NextDirection(g.maze, a.pos, a.facing, g.targetFor(a), false))
	}
}

// targetFor returns where a non-frightened roaming ghost is heading.
func (g *Game) targetFor(a *actor) core.Point {
	mode := g.modes.Mode()
	if mode == ghost.Frightened {
		// Revived ghosts ignore the fright and follow the paused wave.
		mode = g.modes.PreviousMode()
	}
	if a.kind == ghost.Red && mode == ghost.Scatter && g.elroyLevel() > 0 {
		mode = ghost.Chase
	}
	return ghost.Target(a.strategy, mode, a.state(mode), g.playerState(), g.ghosts[ghost.Red].pos)
}

// ghostInterval returns the seconds a ghost needs per tile.
func (g *Game) ghostInterval(a *actor) float64 {
	var iv float64
	switch {
	case a.eaten:
		iv = g.cfg.Timing.EatenStep
	case a.frightened:
		iv = g.cfg.Timing.FrightenedStep
	default:
		iv = g.cfg.Timing.GhostStep
		if a.kind == ghost.Red {
			switch g.elroyLevel() {
			case 1:
				iv *= g.cfg.Elroy.StepScale1
			case 2:
				iv *= g.cfg.Elroy.StepScale2
			}
		}
		iv = g.difficulty.StepInterval(iv, g.progress())
	}
	return max(iv, minStepInterval)
}

// elroyLevel returns how far Red has sped up, or 0 when disabled.
func (g *Game) elroyLevel() int {
	if !g.cfg.Elroy.Enabled {
		return 0
	}
	return ghost.ElroyLevel(g.maze.PelletCount(), g.cfg.Elroy.Threshold1, g.cfg.Elroy.Threshold2)
}

func (g *Game) reverseGhosts() {
	for _, a := range g.ghosts {
		if a.house == houseOut && !a.eaten {
			a.facing = a.facing.Opposite()
		}
	}
}

// checkCollisions resolves player/ghost contact after everyone moved.
// A ghost and the player that swapped tiles this tick also collide.
func (g *Game) checkCollisions(playerFrom core.Point, ghostFrom [4]core.Point) {
	for i, a := range g.ghosts {
		if a.eaten {
			continue
		}
		crossed := a.pos == playerFrom && ghostFrom[i] == g.player.pos
		if a.pos != g.player.pos && !crossed {
			continue
		}
		if a.frightened {
			g.eatGhost(a)
			continue
		}
		g.killPlayer(a)
		return
	}
}

func (g *Game) eatGhost(a *actor) {
	points := g.cfg.Scoring.Ghost
	for range g.combo {
		points *= g.cfg.Scoring.GhostMultiplier
	}
	g.combo++
	a.eaten = true
	a.frightened = false
	g.bus.Publish(GhostEaten{Ghost: a.kind, Position: a.pos, Points: points, Combo: g.combo})
	g.addScore(points)
}

func (g *Game) killPlayer(by *actor) {
	g.lives--
	g.bus.Publish(PlayerDied{By: by.kind, Position: g.player.pos, LivesLeft: g.lives})
	g.publishPlayer()
	if g.lives <= 0 {
		g.setPhase(PhaseGameOver)
		return
	}
	g.freeze = g.cfg.Timing.DeathPause
	g.setPhase(PhaseDying)
}

// addScore adds points and awards the bonus life when its threshold is
// crossed for the first time.
func (g *Game) addScore(points int) {
	before := g.score
	g.score += points
	at := g.cfg.Scoring.ExtraLifeAt
	if at > 0 && !g.extraLifeAwarded && before < at && g.score >= at {
		g.extraLifeAwarded = true
		if g.lives < g.cfg.Lives.Max {
			g.lives++
		}
		g.bus.Publish(ExtraLife{Score: g.score, Lives: g.lives})
	}
	g.publishPlayer()
}

func (g *Game) playerState() ghost.PlayerState {
	return ghost.PlayerState{
		Position:  g.player.pos,
		Facing:    g.player.facing,
		Score:     g.score,
		Lives:     g.lives,
		PoweredUp: g.modes.IsFrightened(),
	}
}

func (g *Game) publishPlayer() {
	g.bus.Publish(PlayerStateChanged{Player: g.playerState()})
}
