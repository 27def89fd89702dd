package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps for most of the wait and spins for the last
// stretch, nudging its schedule when it drifts.
type AdaptiveLimiter struct {
	frame     time.Duration
	nextFrame time.Time
	frames    int64
	now       func() time.Time
	sleep     func(time.Duration)
}

func NewAdaptiveLimiter(frame time.Duration) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		frame:     frame,
		nextFrame: time.Now(),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

const (
	spinThreshold  = 2 * time.Millisecond
	resyncAfter    = 5 * time.Millisecond
	driftTolerance = 10 * time.Millisecond
	driftCheck     = 50
)

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	wait := a.nextFrame.Sub(now)

	switch {
	case wait > spinThreshold:
		a.sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for a.now().Before(a.nextFrame) {
			// spin for the last stretch
		}
	case wait < -resyncAfter:
		// too far behind to catch up: start over from now
		a.nextFrame = now
	}

	deadline := a.nextFrame
	a.nextFrame = a.nextFrame.Add(a.frame)
	a.frames++

	if a.frames%driftCheck == 0 {
		// measured against the deadline just met, not the one ahead
		drift := a.now().Sub(deadline)
		if drift.Abs() > driftTolerance {
			a.nextFrame = a.nextFrame.Add(drift / 10)
			slog.Debug("frame pacing drift correction", "drift_ms", drift.Milliseconds(), "frames", a.frames)
		}
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrame = a.now()
	a.frames = 0
}
