// Package mapper turns raw control readings into oscillator parameters.
//
// Pitch comes from the sum of a voice's own period knob and the shared
// master knob, looked up in the period table. Duty cycle shrinks as either
// pulse-width knob rises: the master channel compresses every voice at
// once, the voice channel offsets it individually.
package mapper

import "github.com/valerio/go-squarebox/squarebox/table"

// RawSample holds the latest readings of one pair of control channels.
type RawSample struct {
	PeriodADC     uint16
	PulseWidthADC uint16
}

// Params are concrete oscillator settings in ticks.
type Params struct {
	Period     uint16
	PulseWidth uint16
}

const (
	indexDivisor   = 4
	widthStep      = 16
	divisorBase    = 15
	widthNumerator = 8
)

type Mapper struct {
	table table.Table
}

func New(t table.Table) *Mapper {
	return &Mapper{table: t}
}

// Index is the table index selected by a pair of period readings.
func Index(voice, global RawSample) int {
	return (int(voice.PeriodADC) + int(global.PeriodADC)) / indexDivisor
}

// Divisor is the pulse-width divisor for a pair of pulse-width readings.
// With both readings at 0 it is 16, giving a 50% duty cycle.
func Divisor(voice, global RawSample) uint32 {
	return divisorBase + (1+uint32(voice.PulseWidthADC)/widthStep)*(1+uint32(global.PulseWidthADC)/widthStep)
}

// Map computes the parameters for one voice. Indices past the end of the
// table clamp to the last entry.
func (m *Mapper) Map(voice, global RawSample) Params {
	period := m.table.At(Index(voice, global))
	// period*8 needs more than 16 bits for low notes
	width := uint32(period) * widthNumerator / Divisor(voice, global)
	return Params{Period: period, PulseWidth: uint16(width)}
}
