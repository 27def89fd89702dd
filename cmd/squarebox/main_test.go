package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-squarebox/squarebox"
	"github.com/valerio/go-squarebox/squarebox/config"
)

func keepDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLogging_VerboseHeadlessCoversBringUp(t *testing.T) {
	keepDefaultLogger(t)

	cfg := config.Default()
	cfg.Headless = true
	cfg.Verbose = true
	cfg.Ticks = 1000

	var out bytes.Buffer
	setupLogging(cfg, &out)

	dev, err := squarebox.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { dev.Close() })

	assert.Contains(t, out.String(), "board initialised")
	assert.Contains(t, out.String(), "device ready")

	slog.Debug("debug line")
	assert.Contains(t, out.String(), "level=DEBUG")
}

func TestSetupLogging_LeavesDefaultOtherwise(t *testing.T) {
	keepDefaultLogger(t)
	before := slog.Default()

	var out bytes.Buffer
	for _, cfg := range []config.Config{
		{Headless: true},
		{Verbose: true},
	} {
		setupLogging(cfg, &out)
		assert.Same(t, before, slog.Default())
	}
	assert.Empty(t, out.String())
}
