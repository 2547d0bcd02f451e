package systems

// RoundClock is a frame-driven countdown in whole seconds
type RoundClock struct {
	time      int
	ticks     int
	frameTick int
	expired   bool
}

// NewRoundClock creates a clock at initial seconds, decrementing every frameTick ticks
func NewRoundClock(initial, frameTick int) *RoundClock {
	if frameTick < 1 {
		frameTick = 1
	}
	return &RoundClock{time: max(initial, 0), frameTick: frameTick}
}

// Tick counts one frame and reports expiry exactly once
func (c *RoundClock) Tick() bool {
	if c.expired {
		return false
	}
	c.ticks++
	if c.ticks < c.frameTick {
		return false
	}
	c.ticks = 0
	c.time--
	if c.time <= 0 {
		c.time = 0
		c.expired = true
		return true
	}
	return false
}

// AddBonus extends the clock; no upper bound
func (c *RoundClock) AddBonus(seconds int) {
	if c.expired || seconds <= 0 {
		return
	}
	c.time += seconds
}

// Reset restores initial seconds and clears the sub-second counter
func (c *RoundClock) Reset(initial int) {
	c.time = max(initial, 0)
	c.ticks = 0
	c.expired = false
}

// SetFrameTick changes the ticks-per-second divisor
func (c *RoundClock) SetFrameTick(frameTick int) {
	c.frameTick = max(frameTick, 1)
}

func (c *RoundClock) Time() int { return c.time }

func (c *RoundClock) Expired() bool { return c.expired }

// SubTicks is the tick count since the last decrement
func (c *RoundClock) SubTicks() int { return c.ticks }
