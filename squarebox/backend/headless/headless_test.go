package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-squarebox/squarebox/backend"
	"github.com/valerio/go-squarebox/squarebox/backend/headless"
	"github.com/valerio/go-squarebox/squarebox/debug"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("quits at the tick budget", func(t *testing.T) {
		quits := 0
		h := headless.New()
		require.NoError(t, h.Init(backend.Config{
			Title:     "Test",
			MaxTicks:  300,
			Callbacks: backend.Callbacks{OnQuit: func() { quits++ }},
		}))

		for ticks := uint64(100); ticks <= 500; ticks += 100 {
			require.NoError(t, h.Update(&debug.Snapshot{Ticks: ticks}))
			if ticks < 300 {
				assert.Zero(t, quits)
			}
		}
		assert.Equal(t, 1, quits, "quit is signalled once")
		assert.NoError(t, h.Cleanup())
	})

	t.Run("no budget runs until stopped", func(t *testing.T) {
		h := headless.New()
		require.NoError(t, h.Init(backend.Config{}))
		for range 200 {
			require.NoError(t, h.Update(&debug.Snapshot{Ticks: 1 << 40}))
		}
	})
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
