package logging

import (
	"os"
	"path/filepath"
	"testing"

	"eventbooking/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, closer, err := New(config.LogConfig{Level: "debug", Output: "file", FilePath: path}, "test")
	require.NoError(t, err)
	require.NotNil(t, closer)

	log.Debug().Str("event", "booking").Msg("created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"booking"`)
	assert.Contains(t, string(data), `"env":"test"`)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestNew_FileWithoutPath(t *testing.T) {
	_, _, err := New(config.LogConfig{Output: "file"}, "test")
	assert.Error(t, err)
}

func TestNew_DefaultsToInfo(t *testing.T) {
	log, closer, err := New(config.LogConfig{Level: "bogus"}, "dev")
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}
