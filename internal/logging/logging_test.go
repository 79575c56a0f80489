package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        InfoLevel,
		"INFO":    InfoLevel,
		" debug ": DebugLevel,
		"warning": WarnLevel,
		"warn":    WarnLevel,
		"error":   ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WarnLevel)
	logger.Info("hidden")
	logger.Warn("fetch failed", "resource", "customers", "seq", 7)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "fetch failed")
	require.Contains(t, out, "resource=customers")
	require.Contains(t, out, "seq=7")
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledgerdeck.log")

	logger, closer, err := Open(path, DebugLevel)
	require.NoError(t, err)
	logger.Debug("first")
	require.NoError(t, closer.Close())

	logger, closer, err = Open(path, DebugLevel)
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "first")
	require.Contains(t, lines[1], "second")
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}
