package core

import "testing"

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Point
	}{
		{DirUp, Pt(0, -1)},
		{DirDown, Pt(0, 1)},
		{DirLeft, Pt(-1, 0)},
		{DirRight, Pt(1, 0)},
		{DirNone, Pt(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.Delta(); got != tc.expected {
				t.Errorf("Delta() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite(Opposite(%v)) = %v, expected %v", d, d.Opposite().Opposite(), d)
		}
		if d.Opposite() == d {
			t.Errorf("Opposite(%v) should differ from %v", d, d)
		}
	}
	if DirNone.Opposite() != DirNone {
		t.Errorf("Opposite(none) = %v, expected none", DirNone.Opposite())
	}
}

func TestPointStep(t *testing.T) {
	p := Pt(10, 10)

	tests := []struct {
		name     string
		dir      Direction
		n        int
		expected Point
	}{
		{"up 4", DirUp, 4, Pt(10, 6)},
		{"left 2", DirLeft, 2, Pt(8, 10)},
		{"right 1", DirRight, 1, Pt(11, 10)},
		{"down 3", DirDown, 3, Pt(10, 13)},
		{"none ignores distance", DirNone, 7, Pt(10, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Step(tc.dir, tc.n); got != tc.expected {
				t.Errorf("Step(%v, %d) = %v, expected %v", tc.dir, tc.n, got, tc.expected)
			}
		})
	}
}

func TestPointDistances(t *testing.T) {
	a := Pt(1, 2)
	b := Pt(4, 6)

	if got := a.DistanceSq(b); got != 25 {
		t.Errorf("DistanceSq() = %d, expected 25", got)
	}
	if got := a.Manhattan(b); got != 7 {
		t.Errorf("Manhattan() = %d, expected 7", got)
	}
	if got := b.Sub(a); got != Pt(3, 4) {
		t.Errorf("Sub() = %v, expected (3,4)", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"inside", Pt(15, 15), true},
		{"top-left corner", Pt(10, 10), true},
		{"bottom-right edge (exclusive)", Pt(30, 25), false},
		{"outside left", Pt(5, 15), false},
		{"outside bottom", Pt(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestInputFrameDirection(t *testing.T) {
	f := NewInputFrame()
	if f.Direction() != DirNone {
		t.Errorf("Direction() = %v, expected none", f.Direction())
	}

	f.Set(ActionLeft)
	if f.Direction() != DirLeft {
		t.Errorf("Direction() = %v, expected left", f.Direction())
	}

	f.Set(ActionPause)
	if f.Direction() != DirLeft {
		t.Errorf("Direction() with pause = %v, expected left", f.Direction())
	}

	f.Clear()
	if f.Has(ActionLeft) || f.Direction() != DirNone {
		t.Error("Clear() should drop all actions")
	}
}
