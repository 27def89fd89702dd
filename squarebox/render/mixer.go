// Package render turns the port's pin changes into PCM audio. Each voice pin
// is a +/- square wave; the mixer integrates the pin levels over simulated
// time and box-filters them down to the output sample rate.
package render

import (
	"errors"
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/bit"
)

const (
	// SampleRate is the default output rate.
	SampleRate = 44100
	// headroom keeps the full mix inside int16 with some margin.
	headroom   = 26000
	flushChunk = 2048
)

// Sink consumes mixed mono samples.
type Sink interface {
	WriteSamples(samples []int16) error
	Close() error
}

// Mixer implements mcu.OutputListener.
type Mixer struct {
	clockHz    uint64
	sampleRate uint64
	voices     int
	amplitude  int64
	muted      []bool
	sinks      []Sink

	pins        uint8
	cycle       uint64
	sampleStart uint64
	sampleEnd   uint64
	samples     uint64
	acc         int64

	buf []int16
	err error
}

// NewMixer mixes the low voices pins of a port clocked at clockHz.
func NewMixer(clockHz, sampleRate, voices int, sinks ...Sink) *Mixer {
	m := &Mixer{
		clockHz:    uint64(clockHz),
		sampleRate: uint64(sampleRate),
		voices:     voices,
		amplitude:  int64(headroom / voices),
		muted:      make([]bool, voices),
		sinks:      sinks,
		buf:        make([]int16, 0, flushChunk),
	}
	m.sampleEnd = m.boundary(1)
	return m
}

// boundary is the cycle at which output sample n starts.
func (m *Mixer) boundary(n uint64) uint64 {
	return n * m.clockHz / m.sampleRate
}

func (m *Mixer) level(pins uint8) int64 {
	var l int64
	for v := range m.voices {
		if m.muted[v] {
			continue
		}
		if bit.IsSet(uint8(v), pins) {
			l += m.amplitude
		} else {
			l -= m.amplitude
		}
	}
	return l
}

// PortWrite records a pin change at cycle.
func (m *Mixer) PortWrite(cycle uint64, pins uint8) {
	m.advance(cycle)
	m.pins = pins
}

func (m *Mixer) advance(to uint64) {
	for m.cycle < to {
		end := min(to, m.sampleEnd)
		m.acc += m.level(m.pins) * int64(end-m.cycle)
		m.cycle = end
		if end < m.sampleEnd {
			return
		}
		m.emit(int16(m.acc / int64(m.sampleEnd-m.sampleStart)))
		m.acc = 0
		m.samples++
		m.sampleStart = m.sampleEnd
		m.sampleEnd = m.boundary(m.samples + 1)
	}
}

func (m *Mixer) emit(s int16) {
	m.buf = append(m.buf, s)
	if len(m.buf) >= flushChunk {
		m.Flush()
	}
}

// ToggleMute silences or restores one voice in the mix. Voices the mixer
// does not carry are ignored.
func (m *Mixer) ToggleMute(voice int) bool {
	if voice < 0 || voice >= len(m.muted) {
		slog.Warn("mute toggle for unknown voice", "voice", voice, "voices", len(m.muted))
		return false
	}
	m.muted[voice] = !m.muted[voice]
	slog.Info("voice mute toggled", "voice", voice, "muted", m.muted[voice])
	return m.muted[voice]
}

func (m *Mixer) Muted(voice int) bool {
	if voice < 0 || voice >= len(m.muted) {
		return false
	}
	return m.muted[voice]
}

// Samples is the number of output samples produced so far.
func (m *Mixer) Samples() uint64 {
	return m.samples
}

// Flush hands buffered samples to every sink. The first sink error sticks
// and is returned again by Close.
func (m *Mixer) Flush() error {
	if len(m.buf) == 0 || m.err != nil {
		m.buf = m.buf[:0]
		return m.err
	}
	for _, s := range m.sinks {
		if err := s.WriteSamples(m.buf); err != nil {
			m.err = err
			slog.Error("audio sink failed", "error", err)
			break
		}
	}
	m.buf = m.buf[:0]
	return m.err
}

// Close mixes up to cycle, flushes and closes every sink.
func (m *Mixer) Close(cycle uint64) error {
	m.advance(cycle)
	errs := []error{m.Flush()}
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
