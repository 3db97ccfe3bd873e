// Package logging configures the logrus logger shared by meteo components.
//
// The TUI owns the terminal, so logs go to a file. One-shot commands may
// mirror them to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// StderrMode controls whether log output is mirrored to stderr.
type StderrMode int

const (
	// StderrNever keeps stderr clean. Used while the TUI is running.
	StderrNever StderrMode = iota
	// StderrAuto mirrors to stderr in verbose mode or when stderr is not a terminal.
	StderrAuto
	// StderrAlways mirrors unconditionally.
	StderrAlways
)

// Options configure New.
type Options struct {
	File    string
	Level   string
	Verbose bool
	JSON    bool
	Stderr  StderrMode
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from opts. The returned closer releases the log file.
// Failing to open the file is not fatal: the logger falls back to the
// remaining sinks, or discards output when there are none.
func New(opts Options) (*logrus.Logger, io.Closer) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	var fileErr error

	if path := strings.TrimSpace(opts.File); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, file)
			closer = file
		}
	}

	if mirrorStderr(opts) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	if fileErr != nil {
		logger.WithError(fileErr).Warn("log file unavailable")
	}
	return logger, closer
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}

func mirrorStderr(opts Options) bool {
	switch opts.Stderr {
	case StderrAlways:
		return true
	case StderrAuto:
		interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		return opts.Verbose || !interactive
	default:
		return false
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
