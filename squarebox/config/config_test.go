package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-squarebox/squarebox/mapper"
	"github.com/valerio/go-squarebox/squarebox/scheduler"
	"github.com/valerio/go-squarebox/squarebox/table"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestDefaultPots_MatchPowerOnTuning(t *testing.T) {
	m := mapper.New(table.Default())
	global := mapper.RawSample{PeriodADC: uint16(DefaultPots[6]), PulseWidthADC: uint16(DefaultPots[7])}
	for k, want := range scheduler.DefaultVoices {
		voice := mapper.RawSample{PeriodADC: uint16(DefaultPots[2*k]), PulseWidthADC: uint16(DefaultPots[2*k+1])}
		assert.Equal(t, want, m.Map(voice, global), "voice %d", k)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errIs  error
	}{
		{"headless without ticks", func(c *Config) { c.Headless = true }, ErrHeadlessNeedsTicks},
		{"pot too high", func(c *Config) { c.Pots[3] = 1024 }, ErrBadPot},
		{"pot negative", func(c *Config) { c.Pots[0] = -1 }, ErrBadPot},
		{"negative noise", func(c *Config) { c.ADCNoise = -2 }, nil},
		{"zero fps", func(c *Config) { c.FPS = 0 }, nil},
		{"low sample rate", func(c *Config) { c.SampleRate = 100 }, nil},
		{"unknown pacing", func(c *Config) { c.Pacing = "vsync" }, nil},
		{"zero access cycles", func(c *Config) { c.AccessCycles = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}

	c := Default()
	c.Headless = true
	c.Ticks = 10
	assert.NoError(t, c.Validate())
}

func TestParsePot(t *testing.T) {
	tests := []struct {
		in      string
		channel int
		level   int
		wantErr bool
	}{
		{"0=512", 0, 512, false},
		{" 7 = 1023 ", 7, 1023, false},
		{"3=0", 3, 0, false},
		{"8=10", 0, 0, true},
		{"-1=10", 0, 0, true},
		{"2=1024", 0, 0, true},
		{"2", 0, 0, true},
		{"a=b", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ch, level, err := ParsePot(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadPot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channel, ch)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestApplyPots(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyPots([]string{"1=300", "6=0", "1=400"}))
	assert.Equal(t, 400, c.Pots[1], "last setting wins")
	assert.Equal(t, 0, c.Pots[6])
	assert.Equal(t, DefaultPots[0], c.Pots[0])

	assert.Error(t, c.ApplyPots([]string{"9=1"}))
}
