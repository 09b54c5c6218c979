package logger

import (
	"os"
	"path/filepath"
	"testing"
	"training_portal_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		mode, level string
		want        zapcore.Level
		wantErr     bool
	}{
		{"debug", "", zap.DebugLevel, false},
		{"release", "", zap.InfoLevel, false},
		{"release", "WARN", zap.WarnLevel, false},
		{"debug", " error ", zap.ErrorLevel, false},
		{"debug", "verbose", zap.InfoLevel, true},
	}
	for _, tc := range cases {
		cfg := &config.Config{}
		cfg.Server.Mode = tc.mode
		cfg.Log.Level = tc.level
		got, err := resolveLevel(cfg)
		if tc.wantErr {
			assert.Error(t, err, tc.level)
		} else {
			assert.NoError(t, err, tc.level)
		}
		assert.Equal(t, tc.want, got, "mode=%s level=%q", tc.mode, tc.level)
	}
}

func TestInitLoggerWritesJSONFileAndHonoursLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		Log = prev
		level.SetLevel(zap.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "portal.log")
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.Log = config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}
	InitLogger(cfg)

	Log.Debug("hidden")
	Log.Info("course promoted", zap.Uint("courseID", 7))

	cfg.Log.Level = "debug"
	require.NoError(t, SetLevel(cfg))
	assert.Equal(t, zap.DebugLevel, Level())
	Log.Debug("now visible")

	cfg.Log.Level = "loud"
	assert.Error(t, SetLevel(cfg))
	assert.Equal(t, zap.DebugLevel, Level())
	_ = Log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"msg":"course promoted"`)
	assert.Contains(t, out, `"courseID":7`)
	assert.Contains(t, out, `"mode":"release"`)
	assert.Contains(t, out, "now visible")
	assert.NotContains(t, out, "hidden")
}
