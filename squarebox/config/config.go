// Package config collects the run options of the synth host.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valerio/go-squarebox/squarebox/board"
	"github.com/valerio/go-squarebox/squarebox/mcu"
	"github.com/valerio/go-squarebox/squarebox/sampler"
)

// DefaultPots tune the voices to A4, C5 and E5 at 50% duty with the master
// period knob at mid travel.
var DefaultPots = [sampler.Channels]int{592, 0, 640, 0, 704, 0, 512, 0}

// DefaultSampleRate is the audio output rate.
const DefaultSampleRate = 44100

// Pacing strategies for realtime runs.
const (
	PacingAdaptive = "adaptive"
	PacingTicker   = "ticker"
)

var (
	ErrHeadlessNeedsTicks = errors.New("headless mode requires a positive tick count")
	ErrBadPot             = errors.New("invalid pot setting")
)

type Config struct {
	// Ticks stops the run after this many ticks; 0 runs until quit.
	Ticks    uint64
	Headless bool
	Verbose  bool

	WavPath string
	Play    bool

	Pots       [sampler.Channels]int
	UngatedADC bool
	ADCNoise   int
	NoiseSeed  uint64

	// Realtime paces the simulation against the wall clock, using the
	// limiter named by Pacing.
	Realtime     bool
	Pacing       string
	FPS          int
	SampleRate   int
	AccessCycles int
}

func Default() Config {
	return Config{
		Pots:         DefaultPots,
		FPS:          60,
		Pacing:       PacingAdaptive,
		SampleRate:   DefaultSampleRate,
		AccessCycles: board.AccessCycles,
		NoiseSeed:    1,
	}
}

func (c Config) Validate() error {
	if c.Headless && c.Ticks == 0 {
		return ErrHeadlessNeedsTicks
	}
	for ch, level := range c.Pots {
		if level < 0 || level > mcu.MaxLevel {
			return fmt.Errorf("%w: channel %d level %d out of 0..%d", ErrBadPot, ch, level, mcu.MaxLevel)
		}
	}
	if c.ADCNoise < 0 {
		return fmt.Errorf("adc noise must not be negative, got %d", c.ADCNoise)
	}
	if c.FPS <= 0 || c.FPS > 1000 {
		return fmt.Errorf("fps must be in 1..1000, got %d", c.FPS)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate must be in 8000..192000, got %d", c.SampleRate)
	}
	if c.Pacing != PacingAdaptive && c.Pacing != PacingTicker {
		return fmt.Errorf("unknown pacing %q, want %s or %s", c.Pacing, PacingAdaptive, PacingTicker)
	}
	if c.AccessCycles <= 0 {
		return fmt.Errorf("access cycles must be positive, got %d", c.AccessCycles)
	}
	return nil
}

// ParsePot parses a "channel=level" knob setting.
func ParsePot(s string) (channel, level int, err error) {
	chStr, levelStr, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("%w %q: want channel=level", ErrBadPot, s)
	}
	channel, err = strconv.Atoi(strings.TrimSpace(chStr))
	if err != nil || channel < 0 || channel >= sampler.Channels {
		return 0, 0, fmt.Errorf("%w %q: channel must be 0..%d", ErrBadPot, s, sampler.Channels-1)
	}
	level, err = strconv.Atoi(strings.TrimSpace(levelStr))
	if err != nil || level < 0 || level > mcu.MaxLevel {
		return 0, 0, fmt.Errorf("%w %q: level must be 0..%d", ErrBadPot, s, mcu.MaxLevel)
	}
	return channel, level, nil
}

// ApplyPots overrides the pot levels from "channel=level" settings.
func (c *Config) ApplyPots(settings []string) error {
	for _, s := range settings {
		ch, level, err := ParsePot(s)
		if err != nil {
			return err
		}
		c.Pots[ch] = level
	}
	return nil
}
