// Package osc implements the pulse oscillator that drives one voice pin.
package osc

// Oscillator is a down-counting pulse generator. The output is high while
// the countdown sits below the pulse width.
type Oscillator struct {
	period     uint16 // ticks per cycle, > 0
	pulseWidth uint16 // <= period
	countdown  uint16
}

// New returns an oscillator at the start of a cycle.
func New(period, pulseWidth uint16) *Oscillator {
	o := &Oscillator{}
	o.SetParameters(period, pulseWidth)
	o.countdown = o.period
	return o
}

// Tick advances the oscillator by one scheduler tick and returns the output
// level. The level is taken after the reload, so the tick that wraps the
// cycle already reports the new cycle's first level.
func (o *Oscillator) Tick() bool {
	o.countdown--
	if o.countdown == 0 {
		o.countdown = o.period
	}
	return o.countdown < o.pulseWidth
}

// SetParameters replaces period and pulse width without touching the
// countdown. A new period is only picked up on the next reload, so the
// running cycle always completes with its original length.
func (o *Oscillator) SetParameters(period, pulseWidth uint16) {
	if period == 0 {
		period = 1
	}
	if pulseWidth > period {
		pulseWidth = period
	}
	o.period = period
	o.pulseWidth = pulseWidth
}

func (o *Oscillator) Period() uint16 {
	return o.period
}

func (o *Oscillator) PulseWidth() uint16 {
	return o.pulseWidth
}

func (o *Oscillator) Countdown() uint16 {
	return o.countdown
}
