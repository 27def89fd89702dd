// Package squarebox wires the synth core to a simulated board and the host
// surfaces: audio sinks, pacing and a backend.
package squarebox

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/valerio/go-squarebox/squarebox/backend"
	"github.com/valerio/go-squarebox/squarebox/board"
	"github.com/valerio/go-squarebox/squarebox/config"
	"github.com/valerio/go-squarebox/squarebox/debug"
	"github.com/valerio/go-squarebox/squarebox/mapper"
	"github.com/valerio/go-squarebox/squarebox/mcu"
	"github.com/valerio/go-squarebox/squarebox/render"
	"github.com/valerio/go-squarebox/squarebox/sampler"
	"github.com/valerio/go-squarebox/squarebox/scheduler"
	"github.com/valerio/go-squarebox/squarebox/table"
	"github.com/valerio/go-squarebox/squarebox/timing"
)

// TimerCounts is the tick period in timer counts at the board clock.
const TimerCounts = mcu.ClockHz / table.TickRate

// Device is one powered-up synth.
type Device struct {
	cfg     config.Config
	mcu     *mcu.MCU
	board   *board.Board
	sampler *sampler.Sampler
	sched   *scheduler.Scheduler
	mixer   *render.Mixer

	limiter       timing.Limiter
	ticksPerFrame int

	quit   atomic.Bool
	closed bool
}

type Option func(*options)

type options struct {
	sinks   []render.Sink
	limiter timing.Limiter
}

// WithSink adds an audio sink next to the ones the config asks for.
func WithSink(s render.Sink) Option { return func(o *options) { o.sinks = append(o.sinks, s) } }

// WithLimiter overrides the pacing chosen from the config.
func WithLimiter(l timing.Limiter) Option { return func(o *options) { o.limiter = l } }

// New powers up a device: the board is initialised, the pots are set and
// the scheduler is ready to tick.
func New(cfg config.Config, opts ...Option) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sinks := o.sinks
	if cfg.WavPath != "" {
		sinks = append(sinks, render.NewWavSink(cfg.WavPath, cfg.SampleRate))
	}
	if cfg.Play {
		player, err := render.NewOtoSink(cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("audio playback: %w", err)
		}
		sinks = append(sinks, player)
	}

	d := &Device{
		cfg:           cfg,
		mixer:         render.NewMixer(mcu.ClockHz, cfg.SampleRate, scheduler.Voices, sinks...),
		ticksPerFrame: timing.TicksPerFrame(table.TickRate, cfg.FPS),
	}

	var adcOpts []mcu.ADCOption
	if cfg.ADCNoise > 0 {
		adcOpts = append(adcOpts, mcu.WithNoise(cfg.ADCNoise, cfg.NoiseSeed))
	}
	d.mcu = mcu.New(mcu.WithOutputListener(d.mixer), mcu.WithADC(mcu.NewADC(adcOpts...)))
	for ch, level := range cfg.Pots {
		d.mcu.ADC.SetInput(ch, level)
	}

	d.board = board.New(d.mcu, board.WithAccessCycles(cfg.AccessCycles))
	d.board.Init()

	var samplerOpts []sampler.Option
	if cfg.UngatedADC {
		samplerOpts = append(samplerOpts, sampler.WithUngatedRestart())
	}
	d.sampler = sampler.New(d.board, samplerOpts...)
	d.sched = scheduler.New(d.board, mapper.New(table.Default()), d.sampler, scheduler.Config{
		TimerCounts: TimerCounts,
		Voices:      scheduler.DefaultVoices,
	})

	d.limiter = o.limiter
	if d.limiter == nil {
		d.limiter = newLimiter(cfg, d.ticksPerFrame)
	}

	slog.Info("device ready",
		"tick_rate", table.TickRate,
		"ticks_per_frame", d.ticksPerFrame,
		"gated_adc", !cfg.UngatedADC,
		"sinks", len(sinks))
	return d, nil
}

func newLimiter(cfg config.Config, ticksPerFrame int) timing.Limiter {
	if !cfg.Realtime {
		return timing.NewNoOpLimiter()
	}
	frame := timing.FrameDuration(ticksPerFrame, table.TickRate)
	if cfg.Pacing == config.PacingTicker {
		return timing.NewTickerLimiter(frame)
	}
	return timing.NewAdaptiveLimiter(frame)
}

// Run ticks the device frame by frame, updating b after every frame, until
// the tick budget is spent, the backend asks to quit or ctx is done.
func (d *Device) Run(ctx context.Context, b backend.Backend) (err error) {
	if err := b.Init(backend.Config{
		Title:    "squarebox",
		MaxTicks: d.cfg.Ticks,
		Callbacks: backend.Callbacks{
			OnQuit:       d.Quit,
			OnPotChange:  d.SetPot,
			OnToggleMute: d.ToggleMute,
		},
	}); err != nil {
		return fmt.Errorf("backend init: %w", err)
	}
	defer func() {
		if cerr := b.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("backend cleanup: %w", cerr)
		}
	}()

	d.limiter.Reset()
	for !d.quit.Load() && ctx.Err() == nil {
		n := d.ticksPerFrame
		if d.cfg.Ticks > 0 {
			done := d.sched.Stats().Ticks
			if done >= d.cfg.Ticks {
				break
			}
			n = int(min(uint64(n), d.cfg.Ticks-done))
		}
		d.sched.RunTicks(n)

		snap := d.Snapshot()
		if err := b.Update(&snap); err != nil {
			return fmt.Errorf("backend update: %w", err)
		}
		d.limiter.WaitForNextFrame()
	}

	slog.Info("device stopped", "ticks", d.sched.Stats().Ticks, "lost_ticks", d.board.LostTicks())
	return nil
}

// RunTicks advances the device without any backend.
func (d *Device) RunTicks(n int) {
	d.sched.RunTicks(n)
}

// Quit makes Run return after the current frame.
func (d *Device) Quit() {
	d.quit.Store(true)
}

// SetPot turns the knob wired to an input channel.
func (d *Device) SetPot(channel, level int) {
	d.mcu.ADC.SetInput(channel, level)
	slog.Debug("pot turned", "channel", channel, "label", debug.PotLabel(channel), "level", d.mcu.ADC.Input(channel))
}

func (d *Device) ToggleMute(voice int) {
	d.mixer.ToggleMute(voice)
}

// Snapshot copies the observable state of the device.
func (d *Device) Snapshot() debug.Snapshot {
	st := d.sched.Stats()
	snap := debug.Snapshot{
		Ticks:        st.Ticks,
		Cycles:       d.mcu.Cycles(),
		Phase:        uint8(st.Phase),
		Output:       st.Output,
		Slots:        d.sampler.Slots(),
		Samples:      st.Samples,
		Restarts:     d.sampler.Restarts(),
		Gated:        !d.cfg.UngatedADC,
		LostTicks:    d.board.LostTicks(),
		AudioSamples: d.mixer.Samples(),
		Serial:       d.mcu.USART.Lines(),
	}
	for k := range scheduler.Voices {
		p := d.sched.Voice(k)
		snap.Voices[k] = debug.VoiceState{
			Period:     p.Period,
			PulseWidth: p.PulseWidth,
			Retunes:    st.Retunes[k],
			Muted:      d.mixer.Muted(k),
		}
	}
	for ch := range snap.Pots {
		snap.Pots[ch] = d.mcu.ADC.Input(ch)
	}
	return snap
}

// Board exposes the simulated board, mostly for diagnostics.
func (d *Device) Board() *board.Board {
	return d.board
}

// Close flushes the audio rendered so far and closes every sink.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if t, ok := d.limiter.(*timing.TickerLimiter); ok {
		t.Stop()
	}
	if err := d.mixer.Close(d.mcu.Cycles()); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}
