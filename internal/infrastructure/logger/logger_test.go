package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, cfg := range []*Config{
		{Level: "info", Format: "console"},
		{Level: "debug", Format: "json", Output: "stderr"},
		{},
	} {
		l, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.log")
	l, err := New(&Config{
		Level:         "info",
		Format:        "json",
		Output:        path,
		InitialFields: map[string]any{"service": "inventory"},
	})
	require.NoError(t, err)

	l.Info("written to file")
	require.NoError(t, Sync(l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), `"service":"inventory"`)
}

func TestNew_FileOutputError(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l, err := New(&Config{Level: "info", Format: "json"}, core)
	require.NoError(t, err)

	l.Info("hello")
	require.Len(t, recorded.All(), 1)
	assert.Equal(t, "hello", recorded.All()[0].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}
