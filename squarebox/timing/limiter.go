package timing

import "time"

// Limiter paces simulated time against the wall clock, one frame of ticks
// at a time.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due.
	// Returns immediately if the simulation is behind.
	WaitForNextFrame()

	// Reset drops accumulated timing state, useful after a pause.
	Reset()
}

// NewNoOpLimiter returns a limiter that never waits (headless rendering).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// FrameDuration is the wall-clock length of ticksPerFrame ticks at tickRate.
func FrameDuration(ticksPerFrame, tickRate int) time.Duration {
	return time.Duration(int64(ticksPerFrame) * int64(time.Second) / int64(tickRate))
}

// TicksPerFrame splits tickRate into frames of roughly fps frames per second.
func TicksPerFrame(tickRate, fps int) int {
	if fps <= 0 {
		return tickRate
	}
	return max(1, tickRate/fps)
}
