package core

// Action is a player intent, independent of the key that produced it.
// The platform owns the key bindings.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// Direction returns the movement direction carried by the action, if any.
func (a Action) Direction() Direction {
	switch a {
	case ActionUp:
		return DirUp
	case ActionDown:
		return DirDown
	case ActionLeft:
		return DirLeft
	case ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// InputFrame collects the actions pressed since the previous tick.
// The zero value is ready to use.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: map[Action]bool{}}
}

// Set records a.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = map[Action]bool{}
	}
	f.Actions[a] = true
}

// Has reports whether a was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Direction returns the requested movement direction for this frame.
// When several arrows arrived in one tick the last in Up, Down, Left, Right
// order wins.
func (f InputFrame) Direction() Direction {
	dir := DirNone
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if f.Has(a) {
			dir = a.Direction()
		}
	}
	return dir
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
