// Package debug holds the point-in-time view of a running synth that the
// backends and reports render.
package debug

import (
	"fmt"

	"github.com/valerio/go-squarebox/squarebox/sampler"
	"github.com/valerio/go-squarebox/squarebox/table"
)

const (
	Voices   = sampler.Voices
	Channels = sampler.Channels
)

// VoiceState describes one oscillator as last retuned.
type VoiceState struct {
	Period     uint16
	PulseWidth uint16
	Retunes    uint64
	Muted      bool
}

// Frequency is the pitch the voice plays at the firmware tick rate.
func (v VoiceState) Frequency() float64 {
	if v.Period == 0 {
		return 0
	}
	return float64(table.TickRate) / float64(v.Period)
}

// Duty is the fraction of each period the output is high, in percent.
func (v VoiceState) Duty() float64 {
	if v.Period == 0 {
		return 0
	}
	return 100 * float64(v.PulseWidth) / float64(v.Period)
}

func (v VoiceState) Note() string {
	return table.NearestNote(v.Period)
}

// Snapshot is copied out of the device between frames; backends must not
// hold on to the Serial slice across updates.
type Snapshot struct {
	Ticks  uint64
	Cycles uint64
	Phase  uint8
	Output uint8

	Voices [Voices]VoiceState
	// Slots are the sampler's latest readings, Pots the analog levels
	// currently applied to the inputs.
	Slots [Channels]uint16
	Pots  [Channels]uint16

	Samples      uint64
	Restarts     uint64
	Gated        bool
	LostTicks    uint64
	AudioSamples uint64
	Serial       []string
}

// PotLabel names what an input channel controls.
func PotLabel(channel int) string {
	switch {
	case channel < 2*Voices && channel%2 == 0:
		return fmt.Sprintf("v%d period", channel/2)
	case channel < 2*Voices:
		return fmt.Sprintf("v%d width", channel/2)
	case channel == 2*Voices:
		return "global period"
	default:
		return "global width"
	}
}

// PotVoice returns the voice a channel belongs to, or -1 for the global
// controls.
func PotVoice(channel int) int {
	if channel < 2*Voices {
		return channel / 2
	}
	return -1
}
