package ghost

import (
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

func TestNewStrategyTypes(t *testing.T) {
	cfg := DefaultTargeting()
	for _, typ := range Types {
		s := NewStrategy(typ, cfg)
		if s.Type() != typ {
			t.Errorf("NewStrategy(%v).Type() = %v", typ, s.Type())
		}
		if s.ScatterTarget() != cfg.Corners[typ] {
			t.Errorf("%v ScatterTarget() = %v, expected %v", typ, s.ScatterTarget(), cfg.Corners[typ])
		}
	}
}

func TestNewStrategyPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewStrategy(Type(9)) did not panic")
		}
	}()
	NewStrategy(Type(9), DefaultTargeting())
}

func TestScatterCornersAreDistinctAndOffGrid(t *testing.T) {
	cfg := DefaultTargeting()
	seen := make(map[core.Point]Type)
	bounds := core.NewRect(0, 0, 28, 31)

	for _, typ := range Types {
		c := NewStrategy(typ, cfg).ScatterTarget()
		if other, ok := seen[c]; ok {
			t.Errorf("%v and %v share scatter corner %v", typ, other, c)
		}
		seen[c] = typ
		if bounds.Contains(c) {
			t.Errorf("%v scatter corner %v lies inside the maze", typ, c)
		}
	}
}

func TestShadowChasesPlayer(t *testing.T) {
	s := NewShadow(DefaultTargeting())
	player := PlayerState{Position: core.Pt(10, 20), Facing: core.DirLeft}

	got := s.ChaseTarget(State{Type: Red, Position: core.Pt(1, 1)}, player, core.Pt(1, 1))
	if got != player.Position {
		t.Errorf("ChaseTarget() = %v, expected %v", got, player.Position)
	}
}

func TestSpeedyAmbushesAhead(t *testing.T) {
	s := NewSpeedy(DefaultTargeting())

	tests := []struct {
		facing   core.Direction
		expected core.Point
	}{
		{core.DirUp, core.Pt(10, 16)},
		{core.DirDown, core.Pt(10, 24)},
		{core.DirLeft, core.Pt(6, 20)},
		{core.DirRight, core.Pt(14, 20)},
		{core.DirNone, core.Pt(10, 20)},
	}

	for _, tc := range tests {
		player := PlayerState{Position: core.Pt(10, 20), Facing: tc.facing}
		if got := s.ChaseTarget(State{Type: Pink}, player, core.Point{}); got != tc.expected {
			t.Errorf("ChaseTarget(facing %v) = %v, expected %v", tc.facing, got, tc.expected)
		}
	}
}

func TestSpeedyTargetMayLeaveGrid(t *testing.T) {
	s := NewSpeedy(DefaultTargeting())
	player := PlayerState{Position: core.Pt(1, 1), Facing: core.DirUp}

	if got := s.ChaseTarget(State{Type: Pink}, player, core.Point{}); got != core.Pt(1, -3) {
		t.Errorf("ChaseTarget() = %v, expected (1,-3)", got)
	}
}

func TestBashfulReflectsRed(t *testing.T) {
	s := NewBashful(DefaultTargeting())

	tests := []struct {
		name     string
		player   PlayerState
		red      core.Point
		expected core.Point
	}{
		{
			name:     "red behind player",
			player:   PlayerState{Position: core.Pt(10, 10), Facing: core.DirRight},
			red:      core.Pt(8, 10),
			expected: core.Pt(16, 10),
		},
		{
			name:     "red on pivot",
			player:   PlayerState{Position: core.Pt(10, 10), Facing: core.DirUp},
			red:      core.Pt(10, 8),
			expected: core.Pt(10, 8),
		},
		{
			name:     "diagonal",
			player:   PlayerState{Position: core.Pt(5, 5), Facing: core.DirDown},
			red:      core.Pt(0, 0),
			expected: core.Pt(10, 14),
		},
		{
			name:     "player standing still",
			player:   PlayerState{Position: core.Pt(4, 4), Facing: core.DirNone},
			red:      core.Pt(6, 7),
			expected: core.Pt(2, 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.ChaseTarget(State{Type: Blue}, tc.player, tc.red); got != tc.expected {
				t.Errorf("ChaseTarget() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPokeyShyness(t *testing.T) {
	cfg := DefaultTargeting()
	s := NewPokey(cfg)
	player := PlayerState{Position: core.Pt(10, 10), Facing: core.DirLeft}

	tests := []struct {
		name     string
		self     core.Point
		expected core.Point
	}{
		{"far away", core.Pt(10, 25), player.Position},
		{"just outside radius", core.Pt(19, 10), player.Position},
		{"exactly on radius", core.Pt(18, 10), cfg.Corners[Orange]},
		{"close", core.Pt(12, 12), cfg.Corners[Orange]},
		{"same tile", core.Pt(10, 10), cfg.Corners[Orange]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.ChaseTarget(State{Type: Orange, Position: tc.self}, player, core.Point{})
			if got != tc.expected {
				t.Errorf("ChaseTarget(self %v) = %v, expected %v", tc.self, got, tc.expected)
			}
		})
	}
}

func TestTargetFollowsMode(t *testing.T) {
	cfg := DefaultTargeting()
	s := NewShadow(cfg)
	player := PlayerState{Position: core.Pt(3, 4)}

	tests := []struct {
		mode     Mode
		expected core.Point
	}{
		{Scatter, cfg.Corners[Red]},
		{Chase, player.Position},
		{Frightened, cfg.Corners[Red]},
	}

	for _, tc := range tests {
		if got := Target(s, tc.mode, State{Type: Red}, player, core.Point{}); got != tc.expected {
			t.Errorf("Target(%v) = %v, expected %v", tc.mode, got, tc.expected)
		}
	}
}

func TestCustomTargetingConfig(t *testing.T) {
	cfg := DefaultTargeting()
	cfg.PinkAhead = 2
	cfg.OrangeShyDistance = 3

	pink := NewSpeedy(cfg)
	player := PlayerState{Position: core.Pt(5, 5), Facing: core.DirRight}
	if got := pink.ChaseTarget(State{}, player, core.Point{}); got != core.Pt(7, 5) {
		t.Errorf("Speedy.ChaseTarget() = %v, expected (7,5)", got)
	}

	orange := NewPokey(cfg)
	if got := orange.ChaseTarget(State{Position: core.Pt(5, 9)}, player, core.Point{}); got != player.Position {
		t.Errorf("Pokey.ChaseTarget() = %v, expected %v", got, player.Position)
	}
}
