// Package logging builds the application's zerolog logger and adapts it to
// the Wails runtime logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Build collects logger options. Output goes to stdout unless a buffer or a
// file path is given; a path wins over a buffer.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Log is a built logger. File is set when logging to a path.
type Log struct {
	File   *os.File
	Logger zerolog.Logger
}

func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

func (b *Build) FromBuffer(w io.Writer) *Build {
	b.writer = w
	return b
}

// WithLevel sets the minimum level by name. Unknown names keep the current level.
func (b *Build) WithLevel(level string) *Build {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && lvl != zerolog.NoLevel {
		b.level = lvl
	}
	return b
}

func (b *Build) Make() (*Log, error) {
	l := &Log{}
	var w io.Writer = os.Stdout
	if b.writer != nil {
		w = b.writer
	}
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		l.File = f
		w = zerolog.SyncWriter(f)
	}
	l.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Logger()
	return l, nil
}

// Close releases the log file, if any.
func (l *Log) Close() error {
	if l.File == nil {
		return nil
	}
	return l.File.Close()
}
