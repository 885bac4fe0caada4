package ghost

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Type identifies one of the four ghosts.
type Type int

const (
	Red Type = iota
	Pink
	Blue
	Orange
)

// Types lists every ghost in release order.
var Types = [4]Type{Red, Pink, Blue, Orange}

func (t Type) String() string {
	switch t {
	case Red:
		return "red"
	case Pink:
		return "pink"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	default:
		return fmt.Sprintf("ghost(%d)", int(t))
	}
}

// MarshalText encodes the ghost by color name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Nickname returns the arcade name of the ghost.
func (t Type) Nickname() string {
	switch t {
	case Red:
		return "Blinky"
	case Pink:
		return "Pinky"
	case Blue:
		return "Inky"
	case Orange:
		return "Clyde"
	default:
		return t.String()
	}
}

// PlayerState is the read-only view of the player that targeting uses.
type PlayerState struct {
	Position  core.Point     `json:"position"`
	Facing    core.Direction `json:"facing"`
	Score     int            `json:"score"`
	Lives     int            `json:"lives"`
	PoweredUp bool           `json:"powered_up"`
}

// State is the read-only view of one ghost.
type State struct {
	Type       Type
	Position   core.Point
	Facing     core.Direction
	Mode       Mode
	Frightened bool
	Eaten      bool
}

// TargetingConfig holds the tuning constants shared by the strategies.
type TargetingConfig struct {
	PinkAhead         int           // tiles ahead of the player Pink aims for
	BlueAhead         int           // tiles ahead of the player Blue pivots around
	OrangeShyDistance int           // Orange retreats when at most this far away
	Corners           [4]core.Point // scatter corners indexed by Type
}

// DefaultTargeting returns the arcade targeting constants. All corners lie
// outside the 28x31 maze.
func DefaultTargeting() TargetingConfig {
	return TargetingConfig{
		PinkAhead:         4,
		BlueAhead:         2,
		OrangeShyDistance: 8,
		Corners: [4]core.Point{
			Red:    core.Pt(25, -3),
			Pink:   core.Pt(2, -3),
			Blue:   core.Pt(27, 34),
			Orange: core.Pt(0, 34),
		},
	}
}

// Strategy computes where a ghost wants to go. Implementations hold only
// immutable configuration, so one value may serve any number of games.
type Strategy interface {
	Type() Type
	// ScatterTarget is the fixed corner the ghost patrols in Scatter.
	ScatterTarget() core.Point
	// ChaseTarget is the tile the ghost heads for in Chase. anchor is the
	// position of the Red ghost.
	ChaseTarget(self State, player PlayerState, anchor core.Point) core.Point
}

// Shadow is Red's strategy: straight at the player.
type Shadow struct {
	corner core.Point
}

// NewShadow creates Red's strategy.
func NewShadow(cfg TargetingConfig) Shadow {
	return Shadow{corner: cfg.Corners[Red]}
}

func (Shadow) Type() Type                 { return Red }
func (s Shadow) ScatterTarget() core.Point { return s.corner }

func (Shadow) ChaseTarget(_ State, player PlayerState, _ core.Point) core.Point {
	return player.Position
}

// Speedy is Pink's strategy: ambush a few tiles ahead of the player.
type Speedy struct {
	corner core.Point
	ahead  int
}

// NewSpeedy creates Pink's strategy.
func NewSpeedy(cfg TargetingConfig) Speedy {
	return Speedy{corner: cfg.Corners[Pink], ahead: cfg.PinkAhead}
}

func (Speedy) Type() Type                 { return Pink }
func (s Speedy) ScatterTarget() core.Point { return s.corner }

func (s Speedy) ChaseTarget(_ State, player PlayerState, _ core.Point) core.Point {
	return player.Position.Step(player.Facing, s.ahead)
}

// Bashful is Blue's strategy: mirror Red through a point ahead of the
// player, which closes in from the side Red is not covering.
type Bashful struct {
	corner core.Point
	ahead  int
}

// NewBashful creates Blue's strategy.
func NewBashful(cfg TargetingConfig) Bashful {
	return Bashful{corner: cfg.Corners[Blue], ahead: cfg.BlueAhead}
}

func (Bashful) Type() Type                 { return Blue }
func (b Bashful) ScatterTarget() core.Point { return b.corner }

func (b Bashful) ChaseTarget(_ State, player PlayerState, anchor core.Point) core.Point {
	pivot := player.Position.Step(player.Facing, b.ahead)
	return pivot.Scale(2).Sub(anchor)
}

// Pokey is Orange's strategy: chase from afar, retreat to its corner when
// close.
type Pokey struct {
	corner core.Point
	shy    int
}

// NewPokey creates Orange's strategy.
func NewPokey(cfg TargetingConfig) Pokey {
	return Pokey{corner: cfg.Corners[Orange], shy: cfg.OrangeShyDistance}
}

func (Pokey) Type() Type                 { return Orange }
func (p Pokey) ScatterTarget() core.Point { return p.corner }

func (p Pokey) ChaseTarget(self State, player PlayerState, _ core.Point) core.Point {
	if self.Position.DistanceSq(player.Position) > p.shy*p.shy {
		return player.Position
	}
	return p.corner
}

// NewStrategy returns the strategy for a ghost type.
// It panics on a value outside Red..Orange, which is a programming error.
func NewStrategy(t Type, cfg TargetingConfig) Strategy {
	switch t {
	case Red:
		return NewShadow(cfg)
	case Pink:
		return NewSpeedy(cfg)
	case Blue:
		return NewBashful(cfg)
	case Orange:
		return NewPokey(cfg)
	default:
		panic(fmt.Sprintf("ghost: unknown type %d", int(t)))
	}
}

// Target returns where a ghost should head given the global mode.
// Frightened and Eaten ghosts are steered elsewhere, so their "target" here
// is simply the scatter corner.
func Target(s Strategy, mode Mode, self State, player PlayerState, anchor core.Point) core.Point {
	if mode == Chase {
		return s.ChaseTarget(self, player, anchor)
	}
	return s.ScatterTarget()
}
