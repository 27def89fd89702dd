package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavSink buffers the whole render in memory and encodes a 16 bit mono WAV
// file when closed.
type WavSink struct {
	path       string
	sampleRate int
	data       []int
}

func NewWavSink(path string, sampleRate int) *WavSink {
	return &WavSink{path: path, sampleRate: sampleRate}
}

func (w *WavSink) WriteSamples(samples []int16) error {
	for _, s := range samples {
		w.data = append(w.data, int(s))
	}
	return nil
}

func (w *WavSink) Close() (rerr error) {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, w.sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: w.sampleRate},
		Data:           w.data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: encoding %s: %w", w.path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalising %s: %w", w.path, err)
	}

	slog.Info("wrote audio", "path", w.path, "samples", len(w.data), "sample_rate", w.sampleRate)
	return nil
}
