// Package ghost implements ghost behavior: the global scatter/chase/frightened
// mode schedule, the four targeting personalities, and tile-by-tile steering
// toward a target.
package ghost

// Mode is the behavior a ghost is currently following.
type Mode int

const (
	Scatter Mode = iota
	Chase
	Frightened
	Eaten
)

func (m Mode) String() string {
	switch m {
	case Scatter:
		return "scatter"
	case Chase:
		return "chase"
	case Frightened:
		return "frightened"
	case Eaten:
		return "eaten"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Schedule holds the timing of the global mode cycle, in seconds.
// Scatter[i] and Chase[i] form wave i. The chase phase of the last wave
// never ends, whatever its configured duration.
type Schedule struct {
	Scatter            []float64
	Chase              []float64
	FrightenedDuration float64
	WarningTime        float64
}

// DefaultSchedule returns the arcade wave timings.
func DefaultSchedule() Schedule {
	return Schedule{
		Scatter:            []float64{7, 7, 5, 5},
		Chase:              []float64{20, 20, 20, 99999},
		FrightenedDuration: 6,
		WarningTime:        2,
	}
}

// breakpoints returns the wave clock readings at which the mode flips
// between Scatter and Chase.
func (s Schedule) breakpoints() []float64 {
	var out []float64
	t := 0.0
	waves := len(s.Scatter)
	for i := range waves {
		t += max(s.Scatter[i], 0)
		out = append(out, t)
		if i == waves-1 || i >= len(s.Chase) {
			break
		}
		t += max(s.Chase[i], 0)
		out = append(out, t)
	}
	return out
}

// clockEpsilon absorbs float drift when many small steps add up to a
// breakpoint.
const clockEpsilon = 1e-9

// ModeController drives the global mode shared by all ghosts.
//
// The wave clock only runs outside Frightened. Breakpoints are compared
// against the running sum, so many small updates and one large update
// covering the same time end in the same mode.
type ModeController struct {
	schedule    Schedule
	breakpoints []float64

	clock      float64 // wave time, frozen while frightened
	phase      int     // breakpoints passed so far
	mode       Mode
	previous   Mode
	frightened float64 // countdown, meaningful only in Frightened
	reverse    bool
}

// NewModeController creates a controller in its initial state: Scatter,
// wave 0, no frightened override.
func NewModeController(s Schedule) *ModeController {
	mc := &ModeController{
		schedule:    s,
		breakpoints: s.breakpoints(),
	}
	mc.Reset()
	return mc
}

// Reset returns to Scatter at wave 0 and clears the countdown, the pending
// reversal and the wave clock.
func (mc *ModeController) Reset() {
	mc.clock = 0
	mc.phase = 0
	mc.mode = Scatter
	mc.previous = Scatter
	mc.frightened = 0
	mc.reverse = false
}

// Update advances time by dt seconds. Non-positive and NaN dt are ignored.
// While frightened only the countdown runs; time left over after it expires
// goes to the wave clock.
func (mc *ModeController) Update(dt float64) {
	if !(dt > 0) {
		return
	}

	if mc.mode == Frightened {
		mc.frightened -= dt
		if mc.frightened > clockEpsilon {
			return
		}
		dt = -mc.frightened
		mc.frightened = 0
		mc.setMode(mc.waveMode())
		if dt <= 0 {
			return
		}
	}

	mc.clock += dt
	for mc.phase < len(mc.breakpoints) && mc.clock+clockEpsilon >= mc.breakpoints[mc.phase] {
		mc.phase++
		mc.reverse = true
	}
	if m := mc.waveMode(); m != mc.mode {
		mc.setMode(m)
	}
}

func (mc *ModeController) waveMode() Mode {
	if mc.phase%2 == 0 {
		return Scatter
	}
	return Chase
}

func (mc *ModeController) setMode(m Mode) {
	mc.previous = mc.mode
	mc.mode = m
}

// Mode returns the authoritative global mode: Scatter, Chase or Frightened.
func (mc *ModeController) Mode() Mode {
	return mc.mode
}

// PreviousMode returns the mode that was active before the current one.
func (mc *ModeController) PreviousMode() Mode {
	return mc.previous
}

// Wave returns the zero-based wave index. It saturates at the last wave.
func (mc *ModeController) Wave() int {
	w := mc.phase / 2
	if last := len(mc.schedule.Scatter) - 1; w > last {
		w = max(last, 0)
	}
	return w
}

// WaveClock returns the elapsed wave time in seconds.
func (mc *ModeController) WaveClock() float64 {
	return mc.clock
}

// IsPermanentChase reports whether the schedule has run out and Chase will
// never end.
func (mc *ModeController) IsPermanentChase() bool {
	return len(mc.breakpoints) > 0 && mc.phase >= len(mc.breakpoints)
}

// IsFrightened reports whether the frightened override is active.
func (mc *ModeController) IsFrightened() bool {
	return mc.mode == Frightened
}

// FrightenedTimeRemaining returns the seconds left in Frightened, or 0.
func (mc *ModeController) FrightenedTimeRemaining() float64 {
	if mc.mode != Frightened {
		return 0
	}
	return max(mc.frightened, 0)
}

// IsFrightenedWarning reports whether Frightened is about to run out.
func (mc *ModeController) IsFrightenedWarning() bool {
	return mc.mode == Frightened && mc.frightened <= mc.schedule.WarningTime+clockEpsilon
}

// TriggerFrightenedMode starts Frightened for the configured duration.
func (mc *ModeController) TriggerFrightenedMode() {
	mc.TriggerFrightenedModeFor(mc.schedule.FrightenedDuration)
}

// TriggerFrightenedModeFor starts Frightened for d seconds. A countdown
// already in flight is replaced, not extended. Negative and NaN d count as
// zero.
func (mc *ModeController) TriggerFrightenedModeFor(d float64) {
	if !(d > 0) {
		d = 0
	}
	if mc.mode != Frightened {
		mc.setMode(Frightened)
	}
	mc.frightened = d
}

// ShouldReverseDirection reports whether a Scatter/Chase flip happened since
// the last call, and clears the signal. Flips that happen before anyone
// reads the signal collapse into one.
func (mc *ModeController) ShouldReverseDirection() bool {
	r := mc.reverse
	mc.reverse = false
	return r
}
