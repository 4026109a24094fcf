// Package playback drives the time cursor over a recorded track: a
// play/pause/seek state machine plus position interpolation along the
// projected route.
package playback

// State is the playback state.
type State int

const (
	// Stopped is the initial state, cursor at zero.
	Stopped State = iota
	// Paused holds the cursor wherever it is.
	Paused
	// Playing advances the cursor on every tick.
	Playing
)

// Clock maps wall-clock deltas to a cursor over the track's time span.
// All methods are called from the render loop thread only.
type Clock struct {
	state    State
	cursor   float64 // seconds into the track
	speed    float64 // playback speed multiplier
	duration float64 // total track duration, seconds
}

// NewClock creates a clock over the given duration with the given initial
// speed multiplier. Non-positive durations are clamped to a minimal span so
// ratio math stays finite.
func NewClock(duration, speed float64) *Clock {
	if duration <= 0 {
		duration = 1
	}
	if speed <= 0 {
		speed = 1
	}
	return &Clock{state: Stopped, speed: speed, duration: duration}
}

// State returns the current state.
func (c *Clock) State() State { return c.state }

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool { return c.state == Playing }

// Cursor returns the cursor position in seconds.
func (c *Clock) Cursor() float64 { return c.cursor }

// Duration returns the total duration in seconds.
func (c *Clock) Duration() float64 { return c.duration }

// Ratio returns the cursor as a fraction of the duration in [0,1].
func (c *Clock) Ratio() float64 { return c.cursor / c.duration }

// Speed returns the speed multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// SetSpeed sets the speed multiplier; non-positive values are ignored.
func (c *Clock) SetSpeed(speed float64) {
	if speed > 0 {
		c.speed = speed
	}
}

// Play starts playback. Resuming from the end restarts from zero.
func (c *Clock) Play() {
	if c.cursor >= c.duration {
		c.cursor = 0
	}
	c.state = Playing
}

// Pause freezes the cursor.
func (c *Clock) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Toggle flips between playing and paused.
func (c *Clock) Toggle() {
	if c.state == Playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Tick advances the cursor by dt (seconds of wall clock) scaled by the
// speed multiplier. Only a playing clock advances; reaching the end pauses
// playback with the cursor clamped to the duration.
func (c *Clock) Tick(dt float64) {
	if c.state != Playing {
		return
	}
	c.cursor += dt * c.speed
	if c.cursor >= c.duration {
		c.cursor = c.duration
		c.state = Paused
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Seek moves the cursor to ratio*duration regardless of state. The ratio
// is clamped to [0,1].
func (c *Clock) Seek(ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	c.cursor = ratio * c.duration
}

// SeekTime moves the cursor to an absolute time, clamped to the span.
func (c *Clock) SeekTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > c.duration {
		t = c.duration
	}
	c.cursor = t
}
