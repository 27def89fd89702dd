package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-squarebox/squarebox/mapper"
	"github.com/valerio/go-squarebox/squarebox/sampler"
	"github.com/valerio/go-squarebox/squarebox/table"
)

// fakeHardware is an instant ADC and a timer that elapses on every poll.
// It records the order of peripheral operations.
type fakeHardware struct {
	inputs  [16]uint16
	channel uint8

	timerStarts []uint16
	outputs     []uint8
	events      []string
}

func (f *fakeHardware) StartCycle(counts uint16) { f.timerStarts = append(f.timerStarts, counts) }
func (f *fakeHardware) PollAndClearElapsed() bool {
	f.events = append(f.events, "tick")
	return true
}
func (f *fakeHardware) StartConversion(ch uint8) { f.channel = ch }
func (f *fakeHardware) PollComplete() bool       { return true }
func (f *fakeHardware) ReadResult() uint16 {
	f.events = append(f.events, "sample")
	return f.inputs[f.channel]
}
func (f *fakeHardware) WriteOutput(bits uint8) {
	f.outputs = append(f.outputs, bits)
	f.events = append(f.events, "output")
}

func newScheduler(hw *fakeHardware, tbl table.Table, voices [Voices]mapper.Params) (*Scheduler, *sampler.Sampler) {
	s := sampler.New(hw)
	return New(hw, mapper.New(tbl), s, Config{TimerCounts: 160, Voices: voices}), s
}

func TestPhase_Transitions(t *testing.T) {
	p := Phase(0)
	for i := 0; i < 3*PhaseCount; i++ {
		assert.Equal(t, PhaseOf(uint64(i)), p)
		p = p.Next()
	}
	assert.Equal(t, Phase(0), Phase(15).Next())
}

func TestPhase_ActionTable(t *testing.T) {
	counts := map[Action]int{}
	for p := Phase(0); p < PhaseCount; p++ {
		counts[p.Action()]++
	}
	assert.Equal(t, 1, counts[Sample])
	assert.Equal(t, 1, counts[RetuneVoice0])
	assert.Equal(t, 1, counts[RetuneVoice1])
	assert.Equal(t, 1, counts[RetuneVoice2])
	assert.Equal(t, PhaseCount-4, counts[Idle])

	assert.Equal(t, Sample, Phase(0).Action())
	assert.Equal(t, RetuneVoice0, Phase(4).Action())
	assert.Equal(t, RetuneVoice1, Phase(8).Action())
	assert.Equal(t, RetuneVoice2, Phase(12).Action())

	k, ok := RetuneVoice2.Voice()
	assert.True(t, ok)
	assert.Equal(t, 2, k)
	_, ok = Sample.Voice()
	assert.False(t, ok)
	assert.Equal(t, "retune voice 1", RetuneVoice1.String())
}

func TestScheduler_StartsTimerOnce(t *testing.T) {
	hw := &fakeHardware{}
	s, _ := newScheduler(hw, table.Default(), DefaultVoices)

	s.RunTicks(40)
	assert.Equal(t, []uint16{160}, hw.timerStarts)
	assert.Len(t, hw.outputs, 40)
	assert.Equal(t, uint64(40), s.Stats().Ticks)
}

func TestScheduler_StaggeredWork(t *testing.T) {
	hw := &fakeHardware{}
	s, _ := newScheduler(hw, table.Default(), DefaultVoices)

	for window := 0; window < 10; window++ {
		before := s.Stats()
		prev := before
		for tick := 0; tick < PhaseCount; tick++ {
			phase := s.Phase()
			s.Step()
			now := s.Stats()

			changed := 0
			for k := range Voices {
				if now.Retunes[k] != prev.Retunes[k] {
					changed++
					assert.Equal(t, Phase(4*(k+1)), phase, "voice %d retuned off-phase", k)
				}
			}
			assert.LessOrEqual(t, changed, 1, "at most one voice per tick")
			if now.Samples != prev.Samples {
				assert.Equal(t, Phase(0), phase)
			}
			prev = now
		}
		after := s.Stats()
		for k := range Voices {
			assert.Equal(t, before.Retunes[k]+1, after.Retunes[k], "voice %d window %d", k, window)
		}
		assert.Equal(t, before.Samples+1, after.Samples)
	}
}

func TestScheduler_OutputBeforeSampling(t *testing.T) {
	hw := &fakeHardware{}
	for i := range hw.inputs {
		hw.inputs[i] = 200
	}
	s, _ := newScheduler(hw, table.Default(), DefaultVoices)

	// tick 0 samples: the output of that tick goes out before the reading
	s.Step()
	require.Equal(t, []string{"tick", "output", "sample"}, hw.events)
}

func TestScheduler_AppliesMappedParameters(t *testing.T) {
	hw := &fakeHardware{}
	hw.inputs[0] = 400 // voice 0 period knob
	hw.inputs[1] = 16  // voice 0 width knob
	s, smp := newScheduler(hw, table.Default(), DefaultVoices)

	// one sweep fills the buffer, the following cycle retunes every voice
	s.RunTicks(PhaseCount*sampler.Channels + PhaseCount)
	require.True(t, smp.Written(0))

	want := mapper.New(table.Default()).Map(
		mapper.RawSample{PeriodADC: 400, PulseWidthADC: 16}, mapper.RawSample{})
	assert.Equal(t, want, s.Voice(0))
	assert.Equal(t, table.Periods[100], s.Voice(0).Period)

	baseline := mapper.Params{Period: table.Periods[0], PulseWidth: table.Periods[0] / 2}
	assert.Equal(t, baseline, s.Voice(1))
	assert.Equal(t, baseline, s.Voice(2))
}

func TestScheduler_OutputRepeatsWithoutRetune(t *testing.T) {
	const period = 227
	hw := &fakeHardware{}
	voices := [Voices]mapper.Params{
		{Period: period, PulseWidth: 113},
		{Period: period, PulseWidth: 113},
		{Period: period, PulseWidth: 113},
	}
	// a one-entry table maps every reading back onto the same period, and
	// zero knobs keep the 50% width
	s, _ := newScheduler(hw, table.New([]uint16{period}), voices)

	s.RunTicks(2 * period)
	require.Len(t, hw.outputs, 2*period)

	first := hw.outputs[:period]
	second := hw.outputs[period:]
	assert.Equal(t, first, second)

	highs := 0
	for _, bits := range first {
		if bits == 0b111 {
			highs++
		}
	}
	assert.InDelta(t, 113, highs, 1)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	hw := &fakeHardware{}
	s, _ := newScheduler(hw, table.Default(), DefaultVoices)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkScheduler_Step(b *testing.B) {
	hw := &fakeHardware{}
	s, _ := newScheduler(hw, table.Default(), DefaultVoices)
	for b.Loop() {
		s.Step()
		hw.outputs = hw.outputs[:0]
		hw.events = hw.events[:0]
	}
}
