// Package backend defines the surfaces a running synth reports to: a plain
// headless run or the interactive terminal monitor.
package backend

import (
	"github.com/valerio/go-squarebox/squarebox/debug"
)

// Backend is driven from the simulation loop once per frame of ticks.
// Backends must not block in Update; pacing is the caller's job.
type Backend interface {
	// Init is called once before the first Update.
	Init(config Config) error

	// Update renders the snapshot and processes any pending input, calling
	// back into the device through Config.Callbacks.
	Update(snap *debug.Snapshot) error

	// Cleanup releases the backend's resources.
	Cleanup() error
}

type Config struct {
	Title     string
	MaxTicks  uint64 // 0 runs until quit
	Callbacks Callbacks
}

// Callbacks let a backend act on the device. Any of them may be nil.
type Callbacks struct {
	OnQuit       func()
	OnPotChange  func(channel int, level int)
	OnToggleMute func(voice int)
}

func (c Callbacks) Quit() {
	if c.OnQuit != nil {
		c.OnQuit()
	}
}

func (c Callbacks) PotChange(channel, level int) {
	if c.OnPotChange != nil {
		c.OnPotChange(channel, level)
	}
}

func (c Callbacks) ToggleMute(voice int) {
	if c.OnToggleMute != nil {
		c.OnToggleMute(voice)
	}
}
