package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "gitwrap.log")

	logger, closer, err := New("debug", file)
	require.NoError(t, err)

	logger.Debug().Str("cmd", "git status").Msg("executed")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "executed", entry["message"])
	assert.Equal(t, "git status", entry["cmd"])
	assert.Contains(t, entry, "time")
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gitwrap.log")
	require.NoError(t, os.WriteFile(file, []byte("{\"message\":\"old\"}\n"), 0o644))

	logger, closer, err := New("info", file)
	require.NoError(t, err)
	logger.Info().Msg("new")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}

func TestNew_Level(t *testing.T) {
	logger, closer, err := New("warn", "")
	require.NoError(t, err)
	defer closer()

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	require.Error(t, err)
}
