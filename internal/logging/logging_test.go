package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFileWithComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meteo.log")

	logger, closer := New(Options{File: path, Level: "info"})
	Component(logger, "favorites").Info("saved")
	Component(logger, "favorites").Debug("hidden at info")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "component=favorites")
	assert.NotContains(t, out, "hidden at info")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	logger, closer := New(Options{Level: "warn", Verbose: true})
	t.Cleanup(func() { _ = closer.Close() })
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	logger, _ := New(Options{Level: "chatty"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNew_JSONFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteo.log")
	logger, closer := New(Options{File: path, JSON: true})
	Component(logger, "search").WithField("city", "Rome").Warn("lookup failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "search", entry["component"])
	assert.Equal(t, "Rome", entry["city"])
	assert.Equal(t, "warning", entry["level"])
}

func TestNew_NoSinksDiscards(t *testing.T) {
	logger, _ := New(Options{Stderr: StderrNever})
	assert.Equal(t, io.Discard, logger.Out)
}

func TestNew_UnopenableFileFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logger, closer := New(Options{File: filepath.Join(blocker, "meteo.log")})
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
	assert.Equal(t, io.Discard, logger.Out)
}
