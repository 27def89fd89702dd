package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-squarebox/squarebox/sampler"
)

func TestSnapshot_SizedFromSampler(t *testing.T) {
	var s Snapshot
	assert.Len(t, s.Voices, sampler.Voices)
	assert.Len(t, s.Slots, sampler.Channels)
	assert.Len(t, s.Pots, sampler.Channels)
}

func TestVoiceState(t *testing.T) {
	v := VoiceState{Period: 227, PulseWidth: 113}
	assert.InDelta(t, 440.5, v.Frequency(), 0.1)
	assert.InDelta(t, 49.8, v.Duty(), 0.1)
	assert.Equal(t, "A4", v.Note())

	assert.Zero(t, VoiceState{}.Frequency())
	assert.Zero(t, VoiceState{}.Duty())
}

func TestPotLabel(t *testing.T) {
	tests := []struct {
		channel int
		label   string
		voice   int
	}{
		{0, "v0 period", 0},
		{1, "v0 width", 0},
		{4, "v2 period", 2},
		{5, "v2 width", 2},
		{6, "global period", -1},
		{7, "global width", -1},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.label, PotLabel(tt.channel))
			assert.Equal(t, tt.voice, PotVoice(tt.channel))
		})
	}
}
