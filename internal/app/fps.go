package app

import "time"

// fpsCounter counts frames and reports the count once per second.
type fpsCounter struct {
	now    func() time.Time
	start  time.Time
	frames int
}

func newFPSCounter(now func() time.Time) *fpsCounter {
	return &fpsCounter{now: now, start: now()}
}

// frame counts one rendered frame. Once a second has passed since the last
// report it returns the count and starts over.
func (c *fpsCounter) frame() (int, bool) {
	c.frames++
	t := c.now()
	if t.Sub(c.start) < time.Second {
		return 0, false
	}
	n := c.frames
	c.frames = 0
	c.start = t
	return n, true
}
