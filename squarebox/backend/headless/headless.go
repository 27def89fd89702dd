package headless

import (
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/backend"
	"github.com/valerio/go-squarebox/squarebox/debug"
)

// progressEvery is the number of updates between progress log lines.
const progressEvery = 50

// Backend runs without any UI, logging progress to stderr until the tick
// budget is spent.
type Backend struct {
	config  backend.Config
	updates int
	done    bool
}

func New() *Backend {
	return &Backend{}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	slog.Info("Running headless mode", "title", config.Title, "ticks", config.MaxTicks)
	return nil
}

func (h *Backend) Update(snap *debug.Snapshot) error {
	if h.done {
		return nil
	}
	h.updates++

	if h.updates%progressEvery == 0 {
		slog.Info("Tick progress",
			"completed", snap.Ticks,
			"total", h.config.MaxTicks,
			"lost", snap.LostTicks,
			"audio_samples", snap.AudioSamples)
	}

	if h.config.MaxTicks > 0 && snap.Ticks >= h.config.MaxTicks {
		h.done = true
		slog.Info("Headless execution completed",
			"ticks", snap.Ticks,
			"lost", snap.LostTicks,
			"adc_samples", snap.Samples)
		h.config.Callbacks.Quit()
	}
	return nil
}

func (h *Backend) Cleanup() error {
	return nil
}
