package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// FilterLevel keeps lines at minLevel severity or above. Lines whose level
// cannot be determined are kept.
func FilterLevel(lines []string, minLevel logrus.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		level, ok := LineLevel(line)
		if ok && level > minLevel {
			continue
		}
		out = append(out, line)
	}
	return out
}

// LineLevel extracts the level from a line written by logrus's text or JSON
// formatter.
func LineLevel(line string) (logrus.Level, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var entry struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &entry); err != nil || entry.Level == "" {
			return 0, false
		}
		return parseLevel(entry.Level)
	}

	for _, field := range strings.Fields(trimmed) {
		if value, found := strings.CutPrefix(field, "level="); found {
			return parseLevel(strings.Trim(value, `"`))
		}
	}
	return 0, false
}

func parseLevel(value string) (logrus.Level, bool) {
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return 0, false
	}
	return level, true
}
