package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 25, cfg.Timer.FocusMinutes)
	require.Equal(t, 5, cfg.Timer.BreakMinutes)
	require.Equal(t, 15, cfg.Timer.LongBreakMinutes)
	require.True(t, cfg.Timer.EnableLongBreak)
	require.Equal(t, 4, cfg.Timer.LongBreakInterval)
	require.Equal(t, "~/.pomoday", cfg.Storage.DataDir)
	require.NotEmpty(t, cfg.Theme.ColorFocus)
}

func TestSeedSettings(t *testing.T) {
	t.Run("carries configured values", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Timer.FocusMinutes = 50
		cfg.Timer.Sound = false

		s := cfg.SeedSettings()
		require.Equal(t, 50, s.FocusMinutes)
		require.False(t, s.SoundEnabled)
		require.True(t, s.NotificationsEnabled)
	})

	t.Run("sanitizes invalid durations", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Timer.FocusMinutes = 0
		cfg.Timer.BreakMinutes = -10

		s := cfg.SeedSettings()
		require.Equal(t, 25, s.FocusMinutes)
		require.Equal(t, 5, s.BreakMinutes)
	})
}

func TestGetDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.DataDir = "/tmp/pomoday-test"

	require.Equal(t, filepath.Join("/tmp/pomoday-test", "pomoday.db"), GetDBPath(cfg))
}
