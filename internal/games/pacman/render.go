package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// cellWidth is the number of screen columns per tile; terminal cells are
// roughly twice as tall as wide.
const cellWidth = 2

var ghostColors = [4]core.Color{
	ghost.Red:    core.ColorShadow,
	ghost.Pink:   core.ColorSpeedy,
	ghost.Blue:   core.ColorBashful,
	ghost.Orange: core.ColorPokey,
}

func (g *Game) boardSize() (w, h int) {
	return g.maze.Width() * cellWidth, g.maze.Height()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		bw, bh := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", bw, bh+hudHeight))
		return
	}

	bw, _ := g.boardSize()
	ox := (dst.Width() - bw) / 2
	oy := hudHeight

	g.renderMaze(dst, ox, oy)
	if g.phase != PhaseLevelCleared {
		g.renderGhosts(dst, ox, oy)
	}
	g.renderPlayer(dst, ox, oy)

	switch g.Phase() {
	case PhaseWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.score))
	case PhaseGameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case PhasePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case PhaseLevelCleared:
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", g.level), "Get ready")
	case PhaseDying:
		if g.lives > 0 {
			g.renderOverlay(dst, "Caught!", fmt.Sprintf("%d %s left", g.lives, plural(g.lives, "life", "lives")))
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Level: %d  Lives: %s",
		g.Title(), g.score, g.level, strings.Repeat("♥", max(g.lives, 0)))
	dst.DrawTextColored(0, 0, hud, core.ColorText)

	status := g.modes.Mode().String()
	if g.modes.IsFrightened() {
		status = fmt.Sprintf("%s %.1fs", status, g.modes.FrightenedTimeRemaining())
	}
	if e := g.elroyLevel(); e > 0 {
		status = fmt.Sprintf("%s  elroy %d", status, e)
	}
	status += " "
	dst.DrawTextColored(dst.Width()-len([]rune(status)), 0, status, core.ColorDim)

	// Draw separator
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderMaze(dst *core.Screen, ox, oy int) {
	for y := range g.maze.Height() {
		for x := range g.maze.Width() {
			sx := ox + x*cellWidth
			sy := oy + y
			switch g.maze.TileAt(core.Pt(x, y)) {
			case maze.Wall:
				dst.SetColored(sx, sy, '█', core.ColorWall)
				dst.SetColored(sx+1, sy, '█', core.ColorWall)
			case maze.Pellet:
				dst.SetColored(sx, sy, '·', core.ColorPellet)
			case maze.PowerPellet:
				if g.tick/15%2 == 0 {
					dst.SetColored(sx, sy, '●', core.ColorPowerPellet)
				}
			case maze.GhostDoor:
				dst.SetColored(sx, sy, '─', core.ColorDoor)
				dst.SetColored(sx+1, sy, '─', core.ColorDoor)
			}
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, ox, oy int) {
	r := '<'
	switch g.player.facing {
	case core.DirLeft:
		r = '>'
	case core.DirUp:
		r = 'V'
	case core.DirDown:
		r = '^'
	}
	if g.phase == PhaseDying || g.phase == PhaseGameOver {
		r = '*'
	}
	dst.SetColored(ox+g.player.pos.X*cellWidth, oy+g.player.pos.Y, r, core.ColorPlayer)
}

func (g *Game) renderGhosts(dst *core.Screen, ox, oy int) {
	warning := g.modes.IsFrightenedWarning() && g.tick/10%2 == 0
	for _, a := range g.ghosts {
		sx := ox + a.pos.X*cellWidth
		sy := oy + a.pos.Y
		switch {
		case a.eaten:
			dst.SetColored(sx, sy, '"', core.ColorEyes)
		case a.frightened && warning:
			dst.SetColored(sx, sy, 'ᗣ', core.ColorFlash)
		case a.frightened:
			dst.SetColored(sx, sy, 'ᗣ', core.ColorFrightened)
		default:
			dst.SetColored(sx, sy, 'ᗣ', ghostColors[a.kind])
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorText)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorText)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
