package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelFallback(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("priced", zap.String("domain", "example.example"))
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"domain":"example.example"`)
	assert.Contains(t, string(content), `"timestamp"`)
}

func TestNew_BadFileOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestInitialize_ReplacesGlobal(t *testing.T) {
	before := L()
	t.Cleanup(func() {
		mu.Lock()
		global = before
		mu.Unlock()
	})

	logger, err := Initialize(DefaultConfig())
	require.NoError(t, err)
	assert.Same(t, logger, L())
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
