// Package hal describes the hardware capabilities the synth core consumes.
// The core never touches peripheral registers directly; a host supplies an
// implementation (the simulated board, or a fake in tests).
package hal

// Timer is the tick source. StartCycle arms a repeating compare cycle of the
// given length in timer counts; PollAndClearElapsed reports (and acknowledges)
// a compare match.
type Timer interface {
	StartCycle(counts uint16)
	PollAndClearElapsed() bool
}

// ADC is a single multiplexed converter shared by all analog inputs.
type ADC interface {
	StartConversion(channel uint8)
	PollComplete() bool
	// ReadResult returns the last completed conversion, 0..1023.
	ReadResult() uint16
}

// GPIO drives the voice output pins.
type GPIO interface {
	WriteOutput(bits uint8)
}

// Hardware is the full capability set handed to the scheduler.
type Hardware interface {
	Timer
	ADC
	GPIO
}

// Await spins until cond reports true. There is no timeout: a peripheral
// that never signals hangs the caller, same as on the device.
func Await(cond func() bool) {
	for !cond() {
	}
}
