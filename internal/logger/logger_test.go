package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{" warn ", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sockwatch.log")

	l, closer, err := Open(path, "info")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("refreshed", "tcp", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refreshed")
	assert.Contains(t, string(data), "tcp=3")
	assert.Contains(t, string(data), "sockwatch")
	assert.NotContains(t, string(data), "hidden")
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	l, closer, err := Open("", "debug")
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Error("nowhere")
	assert.NoError(t, closer.Close())
}

func TestOpen_BadLevel(t *testing.T) {
	_, _, err := Open("", "chatty")
	assert.Error(t, err)
}

func TestNew_DebugEnvForcesDebug(t *testing.T) {
	t.Setenv(DebugEnv, "1")

	l := New(os.Stderr, log.ErrorLevel)

	assert.Equal(t, log.DebugLevel, l.GetLevel())
}

func TestNewBuffer(t *testing.T) {
	l, buf := NewBuffer()

	l.Debug("probe", "pid", 12)

	assert.Contains(t, buf.String(), "probe")
	assert.Contains(t, buf.String(), "pid=12")
}

func TestNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Noop().Error("dropped")
	})
}
