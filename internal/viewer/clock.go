package viewer

import "time"

const (
	// MaxFrameDelta caps the step after a stall (suspended terminal, slow
	// link) so the camera does not jump across the world.
	MaxFrameDelta = 250 * time.Millisecond

	fpsSmoothing = 0.1
)

// Clock measures elapsed time between frames and keeps a smoothed frame rate.
type Clock struct {
	last time.Time
	fps  float64
}

// NewClock creates a clock that has not ticked yet.
func NewClock() *Clock {
	return &Clock{}
}

// Tick records a frame at now and returns the seconds since the previous tick.
// The first tick returns 0.
func (c *Clock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	d := now.Sub(c.last)
	c.last = now
	if d <= 0 {
		return 0
	}

	// The rate reflects the real interval; only the step is capped.
	inst := 1 / d.Seconds()
	if c.fps == 0 {
		c.fps = inst
	} else {
		c.fps += (inst - c.fps) * fpsSmoothing
	}
	return min(d, MaxFrameDelta).Seconds()
}

// FPS returns the smoothed frame rate, or 0 before two ticks.
func (c *Clock) FPS() float64 {
	return c.fps
}

// Reset forgets the previous tick, e.g. after the loop was paused.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
