// Package scheduler runs the fixed-rate cooperative loop: wait for the tick,
// clock every voice, write the port, then do the staggered work of the
// current phase.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/bit"
	"github.com/valerio/go-squarebox/squarebox/hal"
	"github.com/valerio/go-squarebox/squarebox/mapper"
	"github.com/valerio/go-squarebox/squarebox/osc"
	"github.com/valerio/go-squarebox/squarebox/sampler"
)

const Voices = sampler.Voices

// DefaultVoices is the power-on tuning: A4, C5 and E5 at 50% duty.
var DefaultVoices = [Voices]mapper.Params{
	{Period: 227, PulseWidth: 113},
	{Period: 191, PulseWidth: 95},
	{Period: 152, PulseWidth: 76},
}

type Config struct {
	// TimerCounts is the compare value handed to the tick timer.
	TimerCounts uint16
	Voices      [Voices]mapper.Params
}

// Stats is a read-only view of the loop counters.
type Stats struct {
	Ticks   uint64
	Phase   Phase
	Output  uint8
	Retunes [Voices]uint64
	Samples uint64
}

type Scheduler struct {
	hw      hal.Hardware
	mapper  *mapper.Mapper
	sampler *sampler.Sampler
	voices  [Voices]*osc.Oscillator

	timerCounts uint16
	started     bool

	phase   Phase
	ticks   uint64
	output  uint8
	retunes [Voices]uint64
}

func New(hw hal.Hardware, m *mapper.Mapper, s *sampler.Sampler, cfg Config) *Scheduler {
	sched := &Scheduler{
		hw:          hw,
		mapper:      m,
		sampler:     s,
		timerCounts: cfg.TimerCounts,
	}
	for k, p := range cfg.Voices {
		sched.voices[k] = osc.New(p.Period, p.PulseWidth)
	}
	return sched
}

// Start arms the tick timer. Step calls it on first use.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.hw.StartCycle(s.timerCounts)
	s.started = true
	slog.Debug("scheduler started", "timer_counts", s.timerCounts)
}

// Step runs one tick. Every voice is clocked and the port written before any
// parameter of the tick is changed, so each output frame is consistent.
func (s *Scheduler) Step() {
	s.Start()

	s.sampler.BeginNext()
	hal.Await(s.hw.PollAndClearElapsed)

	var levels [Voices]bool
	for k, v := range s.voices {
		levels[k] = v.Tick()
	}
	bits := bit.Pack(levels[:])
	s.hw.WriteOutput(bits)
	s.output = bits

	global := s.sampler.Global()
	act := s.phase.Action()
	if k, ok := act.Voice(); ok {
		s.retune(k, global)
	}
	s.sampler.MaybeComplete(act == Sample)

	s.ticks++
	s.phase = s.phase.Next()
}

func (s *Scheduler) retune(k int, global mapper.RawSample) {
	p := s.mapper.Map(s.sampler.Voice(k), global)
	v := s.voices[k]
	if p.Period != v.Period() || p.PulseWidth != v.PulseWidth() {
		slog.Debug("voice retuned", "voice", k, "period", p.Period, "pulse_width", p.PulseWidth, "tick", s.ticks)
	}
	v.SetParameters(p.Period, p.PulseWidth)
	s.retunes[k]++
}

// RunTicks runs n ticks.
func (s *Scheduler) RunTicks(n int) {
	for range n {
		s.Step()
	}
}

// Run ticks until ctx is cancelled. The device itself never stops; the
// context only exists for the host.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.RunTicks(PhaseCount)
	}
}

// Voice returns the current parameters of voice k.
func (s *Scheduler) Voice(k int) mapper.Params {
	v := s.voices[k]
	return mapper.Params{Period: v.Period(), PulseWidth: v.PulseWidth()}
}

func (s *Scheduler) Phase() Phase {
	return s.phase
}

func (s *Scheduler) Stats() Stats {
	return Stats{
		Ticks:   s.ticks,
		Phase:   s.phase,
		Output:  s.output,
		Retunes: s.retunes,
		Samples: s.sampler.Completions(),
	}
}
