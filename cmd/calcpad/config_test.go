package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
	return name
}

func TestLoadConfig(t *testing.T) {
	name := writeConfig(t, `
log_level: debug
chain: true
color: false
keypad:
  - ["7", "8", "9", "/"]
  - ["4", "5", "6", "*"]
`)
	cfg, err := LoadConfig(name, false)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Chain)
	assert.False(t, cfg.UseColor())
	assert.Equal(t, [][]string{{"7", "8", "9", "/"}, {"4", "5", "6", "*"}}, cfg.Keypad)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.UseColor())

	cfg, err = LoadConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":    "chain: [",
		"level":     "log_level: loud",
		"empty-row": "keypad:\n  - []\n",
		"blank-key": "keypad:\n  - [\"1\", \" \"]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body), false)
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for s, want := range cases {
		got, err := parseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}
