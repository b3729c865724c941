package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "basket3d.txt")
	l, err := New(Options{Level: "debug", File: path, Console: &console})
	require.NoError(t, err)

	l.Info().Int("items", 47).Msg("viewport mounted")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), "viewport mounted")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"items":47`)
	assert.Contains(t, lines[0], `"message":"viewport mounted"`)
}

func TestLoggerLevel(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "basket3d.txt")
	l, err := New(Options{Level: "WARN", File: path, Console: &console})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
	l.Info().Msg("hidden")
	require.NoError(t, l.Close())
	assert.Empty(t, console.String())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b)

	l, err = New(Options{Level: "loud", Console: &console})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
