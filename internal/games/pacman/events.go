package pacman

import (
	"sync"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
)

// Event is something that happened during a step. The set of events is
// closed; switch on the concrete type.
type Event interface {
	// Kind is a stable name for logs and the spectator feed.
	Kind() string
	gameEvent()
}

// TileUpdated is published when a tile changes, which in play means a
// pellet was eaten.
type TileUpdated struct {
	Position core.Point    `json:"position"`
	Tile     maze.TileType `json:"tile"`
}

func (TileUpdated) Kind() string { return "tile_updated" }
func (TileUpdated) gameEvent()   {}

// PlayerStateChanged is published whenever score, lives or power-up status
// change.
type PlayerStateChanged struct {
	Player ghost.PlayerState `json:"player"`
}

func (PlayerStateChanged) Kind() string { return "player_state_changed" }
func (PlayerStateChanged) gameEvent()   {}

// GameStateChanged is published when the game starts, pauses, resumes or
// ends.
type GameStateChanged struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

func (GameStateChanged) Kind() string { return "game_state_changed" }
func (GameStateChanged) gameEvent()   {}

// GhostModeChanged is published when the global ghost mode changes.
type GhostModeChanged struct {
	From ghost.Mode `json:"from"`
	To   ghost.Mode `json:"to"`
}

func (GhostModeChanged) Kind() string { return "ghost_mode_changed" }
func (GhostModeChanged) gameEvent()   {}

// GhostEaten is published when the player eats a frightened ghost.
type GhostEaten struct {
	Ghost    ghost.Type `json:"ghost"`
	Position core.Point `json:"position"`
	Points   int        `json:"points"`
	Combo    int        `json:"combo"` // 1 for the first ghost of a frightened period
}

func (GhostEaten) Kind() string { return "ghost_eaten" }
func (GhostEaten) gameEvent()   {}

// PlayerDied is published when a ghost catches the player.
type PlayerDied struct {
	By        ghost.Type `json:"by"`
	Position  core.Point `json:"position"`
	LivesLeft int        `json:"lives_left"`
}

func (PlayerDied) Kind() string { return "player_died" }
func (PlayerDied) gameEvent()   {}

// LevelChanged is published when a marathon run moves to the next maze.
type LevelChanged struct {
	Level int `json:"level"`
}

func (LevelChanged) Kind() string { return "level_changed" }
func (LevelChanged) gameEvent()   {}

// ExtraLife is published when the bonus life is awarded.
type ExtraLife struct {
	Score int `json:"score"`
	Lives int `json:"lives"`
}

func (ExtraLife) Kind() string { return "extra_life" }
func (ExtraLife) gameEvent()   {}

// Bus delivers events to subscribers synchronously, in subscription order.
// Each game owns its own Bus.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber // ordered by id; replaced, never mutated in place
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (b *Bus) Subscribe(fn func(Event)) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	subs := make([]subscriber, len(b.subs), len(b.subs)+1)
	copy(subs, b.subs)
	b.subs = append(subs, subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			subs := make([]subscriber, 0, len(b.subs)-1)
			subs = append(subs, b.subs[:i]...)
			b.subs = append(subs, b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish calls every handler with e. Handlers may subscribe or
// unsubscribe; the change applies from the next Publish.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}
