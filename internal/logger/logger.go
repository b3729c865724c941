package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the log file, relative to the working directory.
const DefaultFilePath = "logs/basket3d.txt"

// Options configure New.
type Options struct {
	Level string // zerolog level name; unknown or empty means info
	// File receives JSON lines. Empty disables the file.
	File string
	// Console is the human-readable output. Nil means stderr; io.Discard disables it.
	Console io.Writer
}

// Logger is a zerolog.Logger that owns the log file it writes to.
type Logger struct {
	zerolog.Logger

	mu   sync.Mutex
	file *os.File
}

// New builds the logger. The log directory is created on demand; if the file
// cannot be opened the logger still works and the error is returned with it.
func New(opts Options) (*Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	l := &Logger{}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen},
	}

	var fileErr error
	if opts.File != "" {
		fileErr = os.MkdirAll(filepath.Dir(opts.File), 0755)
		if fileErr == nil {
			l.file, fileErr = os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		}
		if fileErr == nil {
			writers = append(writers, l.file)
		}
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return l, fileErr
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
