package render

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// maxQueued bounds the playback queue; older samples are dropped when the
// simulation runs ahead of the audio device.
const maxQueued = SampleRate / 4

// OtoSink plays samples live through the system audio device. oto pulls
// from Read on its own goroutine.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	queue   []int16
	dropped uint64
}

func NewOtoSink(sampleRate int) (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	s := &OtoSink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

func (s *OtoSink) WriteSamples(samples []int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, samples...)
	if over := len(s.queue) - maxQueued; over > 0 {
		s.queue = s.queue[over:]
		s.dropped += uint64(over)
	}
	return nil
}

// Read implements io.Reader for the oto player. Underruns play silence.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / 2
	for i := range n {
		var v int16
		if i < len(s.queue) {
			v = s.queue[i]
		}
		binary.LittleEndian.PutUint16(p[2*i:], uint16(v))
	}
	s.queue = s.queue[min(n, len(s.queue)):]
	return 2 * n, nil
}

func (s *OtoSink) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *OtoSink) Close() error {
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	return nil
}
