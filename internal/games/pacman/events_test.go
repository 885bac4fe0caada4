package pacman

import (
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []int
	bus.Subscribe(func(Event) { got = append(got, 1) })
	bus.Subscribe(func(Event) { got = append(got, 2) })
	bus.Subscribe(func(Event) { got = append(got, 3) })

	bus.Publish(LevelChanged{Level: 2})

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("delivery order = %v, expected [1 2 3]", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	id := bus.Subscribe(func(Event) { calls++ })
	bus.Subscribe(func(Event) {})

	bus.Publish(LevelChanged{Level: 1})
	bus.Unsubscribe(id)
	bus.Publish(LevelChanged{Level: 2})

	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
	if bus.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", bus.Len())
	}

	// Unknown ids are ignored.
	bus.Unsubscribe(999)
	if bus.Len() != 1 {
		t.Errorf("Len() = %d after unknown Unsubscribe, expected 1", bus.Len())
	}
}

func TestBusKeepsOrderAfterUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got []int
	bus.Subscribe(func(Event) { got = append(got, 1) })
	mid := bus.Subscribe(func(Event) { got = append(got, 2) })
	bus.Subscribe(func(Event) { got = append(got, 3) })
	bus.Unsubscribe(mid)
	bus.Subscribe(func(Event) { got = append(got, 4) })

	bus.Publish(LevelChanged{Level: 1})

	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Errorf("delivery order = %v, expected [1 3 4]", got)
	}
}

func TestBusPublishDoesNotAllocate(t *testing.T) {
	bus := NewBus()
	n := 0
	for range 4 {
		bus.Subscribe(func(Event) { n++ })
	}
	var e Event = LevelChanged{Level: 1}

	allocs := testing.AllocsPerRun(100, func() { bus.Publish(e) })
	if allocs != 0 {
		t.Errorf("Publish() allocs = %v, expected 0", allocs)
	}
}

func TestBusHandlerMaySubscribe(t *testing.T) {
	bus := NewBus()
	late := 0
	bus.Subscribe(func(Event) {
		bus.Subscribe(func(Event) { late++ })
	})

	bus.Publish(LevelChanged{Level: 1})
	if late != 0 {
		t.Errorf("handler added during Publish ran %d times, expected 0", late)
	}
	bus.Publish(LevelChanged{Level: 2})
	if late != 1 {
		t.Errorf("late handler ran %d times, expected 1", late)
	}
}

func TestEventKinds(t *testing.T) {
	tests := []struct {
		event Event
		kind  string
	}{
		{TileUpdated{Position: core.Pt(1, 1), Tile: maze.Path}, "tile_updated"},
		{PlayerStateChanged{}, "player_state_changed"},
		{GameStateChanged{From: PhasePlaying, To: PhasePaused}, "game_state_changed"},
		{GhostModeChanged{}, "ghost_mode_changed"},
		{GhostEaten{}, "ghost_eaten"},
		{PlayerDied{}, "player_died"},
		{LevelChanged{Level: 3}, "level_changed"},
		{ExtraLife{}, "extra_life"},
	}
	for _, tt := range tests {
		if got := tt.event.Kind(); got != tt.kind {
			t.Errorf("%T.Kind() = %q, expected %q", tt.event, got, tt.kind)
		}
	}
}

func TestGameStateEvents(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	run(g, 1, core.ActionPause)
	run(g, 1, core.ActionPause)

	var got []GameStateChanged
	for _, e := range *events {
		if gs, ok := e.(GameStateChanged); ok {
			got = append(got, gs)
		}
	}
	if len(got) != 2 {
		t.Fatalf("GameStateChanged events = %d, expected 2", len(got))
	}
	if got[0].From != PhasePlaying || got[0].To != PhasePaused {
		t.Errorf("first transition = %v->%v, expected playing->paused", got[0].From, got[0].To)
	}
	if got[1].From != PhasePaused || got[1].To != PhasePlaying {
		t.Errorf("second transition = %v->%v, expected paused->playing", got[1].From, got[1].To)
	}
}

func TestPowerUpPublishesPlayerState(t *testing.T) {
	g := newTestGame(t, VariantClassic, nil)
	events := record(g)

	run(g, 35, core.ActionUp)

	powered := false
	for _, e := range *events {
		if ps, ok := e.(PlayerStateChanged); ok && ps.Player.PoweredUp {
			powered = true
		}
	}
	if !powered {
		t.Error("no PlayerStateChanged with PoweredUp after the power pellet")
	}
}
