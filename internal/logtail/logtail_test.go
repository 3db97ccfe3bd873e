package logtail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "meteo.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	require.NoError(t, os.WriteFile(logPath, []byte(content.String()), 0o644))

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: expectedAll[5:]},
		{name: "exactly all", maxLines: 10, expected: expectedAll},
		{name: "more than exists", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRead_DirectoryFails(t *testing.T) {
	_, err := Read(t.TempDir(), 10)
	assert.Error(t, err)
}

func TestLineLevel(t *testing.T) {
	tests := []struct {
		line  string
		level logrus.Level
		ok    bool
	}{
		{`time="2026-10-16T09:12:03+02:00" level=warning msg="weather lookup failed" component=search`, logrus.WarnLevel, true},
		{`time="2026-10-16T09:12:03+02:00" level=debug msg=ready`, logrus.DebugLevel, true},
		{`{"component":"favorites","level":"error","msg":"boom"}`, logrus.ErrorLevel, true},
		{`{"msg":"no level"}`, 0, false},
		{`{broken json`, 0, false},
		{`level=chatty msg=x`, 0, false},
		{`plain text`, 0, false},
	}

	for _, tt := range tests {
		level, ok := LineLevel(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.level, level, tt.line)
		}
	}
}

func TestFilterLevel(t *testing.T) {
	lines := []string{
		`level=debug msg=a`,
		`level=info msg=b`,
		`level=warning msg=c`,
		`continuation without level`,
		`{"level":"error","msg":"d"}`,
	}

	got := FilterLevel(lines, logrus.WarnLevel)
	assert.Equal(t, []string{
		`level=warning msg=c`,
		`continuation without level`,
		`{"level":"error","msg":"d"}`,
	}, got)

	assert.Equal(t, lines, FilterLevel(lines, logrus.TraceLevel))
}

func TestFollow_EmitsAppendedLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "meteo.log")
	require.NoError(t, os.WriteFile(logPath, []byte("level=error msg=old\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 64)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, logPath, logrus.WarnLevel, func(line string) { lines <- line })
	}()

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	// The tailer seeks asynchronously, so keep appending until a line lands.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

	var got string
	for got == "" {
		select {
		case <-ticker.C:
			_, err := file.WriteString("level=debug msg=noise\nlevel=warning msg=fresh\n")
			require.NoError(t, err)
		case got = <-lines:
		case <-deadline:
			t.Fatal("no line followed")
		}
	}
	assert.Equal(t, "level=warning msg=fresh", got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}
