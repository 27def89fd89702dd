package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-squarebox/squarebox/mapper"
)

// fakeADC completes a conversion after a fixed number of polls. Starting a
// new conversion discards the one in flight.
type fakeADC struct {
	values  [16]uint16
	latency int

	channel   uint8
	remaining int
	running   bool
	result    uint16
	starts    []uint8
	polls     int
}

func (f *fakeADC) StartConversion(ch uint8) {
	f.channel = ch
	f.remaining = f.latency
	f.running = true
	f.starts = append(f.starts, ch)
}

func (f *fakeADC) PollComplete() bool {
	f.polls++
	if !f.running {
		return true
	}
	if f.remaining > 0 {
		f.remaining--
		return false
	}
	f.running = false
	f.result = f.values[f.channel]
	return true
}

func (f *fakeADC) ReadResult() uint16 { return f.result }

// elapse lets one tick worth of conversion time pass.
func (f *fakeADC) elapse() {
	if f.running && f.remaining > 0 {
		f.remaining--
	}
}

func newFake() *fakeADC {
	f := &fakeADC{latency: 3}
	for i := range f.values {
		f.values[i] = uint16(100 + i)
	}
	return f
}

// drive runs the sampler the way the scheduler does: begin every tick,
// complete every 16th tick.
func drive(s *Sampler, ticks int) {
	for tick := 0; tick < ticks; tick++ {
		s.BeginNext()
		s.MaybeComplete(tick%16 == 0)
	}
}

func TestSampler_FullSweep(t *testing.T) {
	adc := newFake()
	s := New(adc)

	for i := 0; i < Channels; i++ {
		assert.False(t, s.Written(i))
	}

	drive(s, 16*Channels)

	for i := 0; i < Channels; i++ {
		assert.True(t, s.Written(i), "slot %d", i)
		assert.Equal(t, uint16(100+i), s.Slot(i))
	}
	assert.Equal(t, uint64(Channels), s.Completions())
	assert.Equal(t, uint8(0), s.Channel(), "channel wraps after a sweep")
}

func TestSampler_OneWritePerSlotPerSweep(t *testing.T) {
	adc := newFake()
	s := New(adc)

	drive(s, 16*Channels)
	before := s.Completions()

	for i := 0; i < Channels; i++ {
		adc.values[i] = uint16(500 + i)
	}
	// one sweep later every slot carries the new value exactly once
	for ch := 0; ch < Channels; ch++ {
		for tick := 0; tick < 16; tick++ {
			s.BeginNext()
			s.MaybeComplete(tick == 0)
		}
		assert.Equal(t, uint16(500+ch), s.Slot(ch))
		for other := ch + 1; other < Channels; other++ {
			assert.Equal(t, uint16(100+other), s.Slot(other), "slot %d refreshed early", other)
		}
	}
	assert.Equal(t, before+Channels, s.Completions())
}

func TestSampler_GatedStartsOncePerChannel(t *testing.T) {
	adc := newFake()
	s := New(adc)

	drive(s, 16*Channels)

	// channel 0 is restarted right after the last completion of the sweep
	require.Len(t, adc.starts, Channels+1)
	for i, ch := range adc.starts {
		assert.Equal(t, uint8(i%Channels), ch)
	}
	assert.Zero(t, s.Restarts())
}

func TestSampler_UngatedRestartsEveryTick(t *testing.T) {
	adc := newFake()
	s := New(adc, WithUngatedRestart())

	drive(s, 32)

	assert.Len(t, adc.starts, 32)
	assert.Equal(t, uint64(29), s.Restarts())
	assert.Equal(t, uint16(100), s.Slot(0))
	assert.Equal(t, uint16(101), s.Slot(1))
}

func TestSampler_UngatedWaitsLongerAtSamplePhase(t *testing.T) {
	gatedADC := newFake()
	gated := New(gatedADC)
	ungatedADC := newFake()
	ungated := New(ungatedADC, WithUngatedRestart())

	// prime: first sample phase both start fresh
	drive(gated, 16)
	drive(ungated, 16)
	gatedADC.polls, ungatedADC.polls = 0, 0

	for tick := 1; tick < 16; tick++ {
		gatedADC.elapse()
		gated.BeginNext()
		ungatedADC.elapse()
		ungated.BeginNext()
	}
	gated.MaybeComplete(true)
	ungated.MaybeComplete(true)

	assert.Equal(t, 1, gatedADC.polls, "gated conversion finished while ticking")
	assert.Equal(t, ungatedADC.latency+1, ungatedADC.polls, "ungated conversion restarted from scratch")
}

func TestSampler_Pairs(t *testing.T) {
	adc := newFake()
	s := New(adc)
	drive(s, 16*Channels)

	assert.Equal(t, mapper.RawSample{PeriodADC: 100, PulseWidthADC: 101}, s.Voice(0))
	assert.Equal(t, mapper.RawSample{PeriodADC: 104, PulseWidthADC: 105}, s.Voice(2))
	assert.Equal(t, mapper.RawSample{PeriodADC: 106, PulseWidthADC: 107}, s.Global())
}
