package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/navionguy/linebasic/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Default(t *testing.T) {
	cfg := Default()
	assert.Equal(t, object.DefaultLimits(), cfg.Limits())
	assert.Equal(t, 14, cfg.ZoneWidth)
	assert.Empty(t, cfg.Listen)
}

func Test_ParseFlags(t *testing.T) {
	cfg, rest, err := Parse("basic", []string{"-T", "-zone", "10", "prog.bas"})
	require.NoError(t, err)
	assert.True(t, cfg.Trace)
	assert.Equal(t, 10, cfg.Limits().ZoneWidth)
	assert.Equal(t, []string{"prog.bas"}, rest)

	_, _, err = Parse("basic", []string{"-nosuchflag"})
	assert.Error(t, err)
}

func Test_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.yaml")
	yml := "listen: \":9000\"\nzone_width: 20\nmax_vars: 12\ncharset: cp437\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, _, err := Parse("basic", []string{"-config", path, "-zone", "8"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 8, cfg.ZoneWidth, "flags should win over the file")
	assert.Equal(t, 12, cfg.MaxVars)
	assert.Equal(t, "cp437", cfg.Charset)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	_, _, err = Parse("basic", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func Test_Level(t *testing.T) {
	tests := []struct {
		inp string
		exp slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Config{LogLevel: tt.inp}.Level(), tt.inp)
	}
}
