// Package maze models the tile grid the game is played on: tile
// classification, bounds and horizontal wrap, walkability rules for the
// player and for ghosts, and pellet bookkeeping.
//
// A Maze has a single writer (the game loop). Other goroutines must read
// copies taken on that goroutine, never the Maze itself.
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// TileType classifies one grid cell.
type TileType uint8

const (
	Wall TileType = iota
	Path
	Pellet
	PowerPellet
	Empty
	GhostDoor
)

func (t TileType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Path:
		return "path"
	case Pellet:
		return "pellet"
	case PowerPellet:
		return "power_pellet"
	case Empty:
		return "empty"
	case GhostDoor:
		return "ghost_door"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// MarshalText encodes the tile by name.
func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsPellet reports whether the tile counts toward the pellet total.
func (t TileType) IsPellet() bool {
	return t == Pellet || t == PowerPellet
}

// Rune returns the layout character for the tile.
func (t TileType) Rune() rune {
	switch t {
	case Wall:
		return '#'
	case Pellet:
		return '.'
	case PowerPellet:
		return 'o'
	case Empty:
		return '_'
	case GhostDoor:
		return '-'
	default:
		return ' '
	}
}

// ParseTile maps a layout character to its tile.
func ParseTile(r rune) (TileType, bool) {
	switch r {
	case '#':
		return Wall, true
	case ' ':
		return Path, true
	case '.':
		return Pellet, true
	case 'o':
		return PowerPellet, true
	case '_':
		return Empty, true
	case '-':
		return GhostDoor, true
	default:
		return Wall, false
	}
}

// ErrEmptyLayout is returned when a layout has no rows or no columns.
var ErrEmptyLayout = errors.New("maze: empty layout")

// Maze is a fixed-size grid of tiles seeded from a layout.
type Maze struct {
	width  int
	height int
	seed   []TileType // layout restored by Initialize
	tiles  []TileType // row-major, index y*width+x

	pellets        int
	initialPellets int
}

// New parses a layout into a maze. Every row must have the same width and
// use only the characters documented on ClassicLayout.
func New(layout []string) (*Maze, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	width := len([]rune(layout[0]))
	height := len(layout)
	seed := make([]TileType, 0, width*height)

	for y, row := range layout {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", y, len(runes), width)
		}
		for x, r := range runes {
			t, ok := ParseTile(r)
			if !ok {
				return nil, fmt.Errorf("maze: unknown tile %q at (%d, %d)", r, x, y)
			}
			seed = append(seed, t)
		}
	}

	m := &Maze{
		width:  width,
		height: height,
		seed:   seed,
		tiles:  make([]TileType, len(seed)),
	}
	m.Initialize()
	return m, nil
}

// MustNew is like New but panics on a malformed layout.
// Intended for built-in layouts.
func MustNew(layout []string) *Maze {
	m, err := New(layout)
	if err != nil {
		panic(err)
	}
	return m
}

// NewClassic returns the standard 28x31 maze.
func NewClassic() *Maze {
	return MustNew(ClassicLayout)
}

// Initialize restores every tile from the seed layout and recounts pellets.
func (m *Maze) Initialize() {
	copy(m.tiles, m.seed)

	m.pellets = 0
	for _, t := range m.tiles {
		if t.IsPellet() {
			m.pellets++
		}
	}
	m.initialPellets = m.pellets
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// InBounds reports whether p lies on the grid. No wrapping is applied.
func (m *Maze) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

func (m *Maze) index(p core.Point) int {
	return p.Y*m.width + p.X
}

// TileAt returns the tile at p. Anything off the grid is a Wall.
func (m *Maze) TileAt(p core.Point) TileType {
	if !m.InBounds(p) {
		return Wall
	}
	return m.tiles[m.index(p)]
}

// SetTileAt replaces the tile at p. Off-grid writes are ignored.
// The pellet count drops by one when a pellet tile becomes anything else;
// no other change touches it.
func (m *Maze) SetTileAt(p core.Point, t TileType) {
	if !m.InBounds(p) {
		return
	}
	i := m.index(p)
	if m.tiles[i].IsPellet() && !t.IsPellet() && m.pellets > 0 {
		m.pellets--
	}
	m.tiles[i] = t
}

// IsWalkable reports whether the player may stand on p.
func (m *Maze) IsWalkable(p core.Point) bool {
	switch m.TileAt(p) {
	case Path, Pellet, PowerPellet, Empty:
		return true
	default:
		return false
	}
}

// IsGhostWalkable reports whether a ghost may stand on p. The ghost door is
// only passable when canUseDoor is set (leaving the house or returning to it).
func (m *Maze) IsGhostWalkable(p core.Point, canUseDoor bool) bool {
	if m.TileAt(p) == GhostDoor {
		return canUseDoor
	}
	return m.IsWalkable(p)
}

// WrapPosition wraps x into [0, width). y is left alone.
func (m *Maze) WrapPosition(p core.Point) core.Point {
	p.X = ((p.X % m.width) + m.width) % m.width
	return p
}

// PelletPositions returns every position currently holding a pellet or a
// power pellet, in row-major order.
func (m *Maze) PelletPositions() []core.Point {
	out := make([]core.Point, 0, m.pellets)
	for i, t := range m.tiles {
		if t.IsPellet() {
			out = append(out, core.Pt(i%m.width, i/m.width))
		}
	}
	return out
}

// PelletCount returns the number of pellets left.
func (m *Maze) PelletCount() int { return m.pellets }

// InitialPelletCount returns the pellet total captured by Initialize.
func (m *Maze) InitialPelletCount() int { return m.initialPellets }

// Eaten returns how many pellets have been consumed since Initialize.
func (m *Maze) Eaten() int { return m.initialPellets - m.pellets }

// Find returns the positions of every tile of type t in the seed layout.
func (m *Maze) Find(t TileType) []core.Point {
	var out []core.Point
	for i, s := range m.seed {
		if s == t {
			out = append(out, core.Pt(i%m.width, i/m.width))
		}
	}
	return out
}

// Tiles returns a copy of the current grid, row-major.
func (m *Maze) Tiles() []TileType {
	out := make([]TileType, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// Rows renders the current grid back into layout strings.
func (m *Maze) Rows() []string {
	rows := make([]string, m.height)
	var sb strings.Builder
	for y := range m.height {
		sb.Reset()
		for x := range m.width {
			sb.WriteRune(m.tiles[y*m.width+x].Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

func (m *Maze) String() string {
	return strings.Join(m.Rows(), "\n")
}
