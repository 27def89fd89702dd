// Package sampler shares one ADC across all control channels. One
// conversion is kept per sample phase, so a full sweep of the channels takes
// Channels sample phases and each slot refreshes at that cadence.
package sampler

import (
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/hal"
	"github.com/valerio/go-squarebox/squarebox/mapper"
)

// Channel layout: voice k reads its period knob on 2k and its pulse-width
// knob on 2k+1; the master pair sits after the voices.
const (
	Voices           = 3
	GlobalPeriod     = 2 * Voices
	GlobalPulseWidth = GlobalPeriod + 1
	Channels         = GlobalPulseWidth + 1
)

// Sampler round-robins the ADC over Channels inputs.
type Sampler struct {
	adc     hal.ADC
	channel uint8
	buffer  [Channels]uint16
	written [Channels]bool

	// gate restarts on an in-flight conversion
	gated    bool
	inFlight bool

	completions uint64
	restarts    uint64
}

type Option func(*Sampler)

// WithUngatedRestart re-issues the conversion every tick even when one is
// already running, discarding its progress. This mirrors the behavior of
// the earliest firmware and lengthens the wait at the sample phase.
func WithUngatedRestart() Option { return func(s *Sampler) { s.gated = false } }

func New(adc hal.ADC, opts ...Option) *Sampler {
	s := &Sampler{adc: adc, gated: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginNext starts a conversion on the current channel.
func (s *Sampler) BeginNext() {
	if s.gated && s.inFlight {
		return
	}
	if s.inFlight {
		s.restarts++
	}
	s.adc.StartConversion(s.channel)
	s.inFlight = true
}

// MaybeComplete collects the in-flight conversion when sample is set, then
// moves on to the next channel. It blocks until the converter is done.
func (s *Sampler) MaybeComplete(sample bool) {
	if !sample {
		return
	}
	if !s.inFlight {
		// nothing was started since the last completion; start now
		s.adc.StartConversion(s.channel)
	}
	hal.Await(s.adc.PollComplete)

	s.buffer[s.channel] = s.adc.ReadResult()
	if !s.written[s.channel] {
		slog.Debug("adc slot primed", "channel", s.channel, "value", s.buffer[s.channel])
	}
	s.written[s.channel] = true
	s.inFlight = false
	s.completions++
	s.channel = (s.channel + 1) % Channels
}

// Channel is the channel the next conversion will read.
func (s *Sampler) Channel() uint8 {
	return s.channel
}

// Slot returns the most recent reading of channel i; zero until written.
func (s *Sampler) Slot(i int) uint16 {
	return s.buffer[i]
}

func (s *Sampler) Written(i int) bool {
	return s.written[i]
}

// Slots copies the whole sample buffer.
func (s *Sampler) Slots() [Channels]uint16 {
	return s.buffer
}

// Voice returns the control pair for voice k.
func (s *Sampler) Voice(k int) mapper.RawSample {
	return mapper.RawSample{
		PeriodADC:     s.buffer[2*k],
		PulseWidthADC: s.buffer[2*k+1],
	}
}

// Global returns the master control pair shared by all voices.
func (s *Sampler) Global() mapper.RawSample {
	return mapper.RawSample{
		PeriodADC:     s.buffer[GlobalPeriod],
		PulseWidthADC: s.buffer[GlobalPulseWidth],
	}
}

func (s *Sampler) Completions() uint64 {
	return s.completions
}

// Restarts counts conversions abandoned by an ungated restart.
func (s *Sampler) Restarts() uint64 {
	return s.restarts
}
