package logtail

import (
	"context"
	"fmt"
	"io"
	stdlog "log"

	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"
)

// Follow streams lines appended to path after the call, filtered to minLevel
// severity, until ctx is done. The file may not exist yet.
func Follow(ctx context.Context, path string, minLevel logrus.Level, emit func(line string)) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return fmt.Errorf("follow log: %w", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			if level, known := LineLevel(line.Text); known && level > minLevel {
				continue
			}
			emit(line.Text)
		}
	}
}
