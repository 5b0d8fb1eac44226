// Package logging configures the standard logger with a level filter and an
// optional log file.
package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Level orders log severities.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

const (
	maxLogSize  = 50 * 1024
	keepLogTail = 25 * 1024
	truncMarker = "\n--- LOG TRUNCATED ---\n"
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// String returns the level name.
func (level Level) String() string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int32(level))
	}
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

// Options configures Setup.
type Options struct {
	Level Level
	// File is the log file path; empty disables file logging.
	File string
	// ClearOnStart removes the previous log file before opening it.
	ClearOnStart bool
	// Console receives log lines alongside the file. Defaults to stderr.
	Console io.Writer
}

// Setup points the standard logger at the console and the log file.
// The returned closer releases the file handle.
func Setup(options Options) (io.Closer, error) {
	SetLevel(options.Level)
	console := options.Console
	if console == nil {
		console = os.Stderr
	}
	log.SetFlags(log.LstdFlags)
	// Console only until the file is open.
	log.SetOutput(console)

	if options.File == "" {
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(options.File), 0o755); err != nil {
		return io.NopCloser(nil), fmt.Errorf("create log directory: %w", err)
	}
	if options.ClearOnStart {
		if err := os.Remove(options.File); err != nil && !errors.Is(err, os.ErrNotExist) {
			return io.NopCloser(nil), fmt.Errorf("clear log file: %w", err)
		}
	} else if err := truncateLog(options.File); err != nil {
		return io.NopCloser(nil), err
	}

	file, err := os.OpenFile(options.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(console, file))
	Infof("logging initialized, log file: %s", options.File)
	return file, nil
}

// SetLevel changes the minimum level that is written.
func SetLevel(level Level) {
	current.Store(int32(level))
}

// Enabled reports whether messages at level are written.
func Enabled(level Level) bool {
	return int32(level) >= current.Load()
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	output(LevelDebug, format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	output(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	output(LevelWarn, format, args...)
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	output(LevelError, format, args...)
}

func output(level Level, format string, args ...any) {
	if !Enabled(level) {
		return
	}
	_ = log.Output(3, level.String()+" "+fmt.Sprintf(format, args...))
}

// truncateLog keeps only the tail of an oversized log file.
func truncateLog(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxLogSize {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}
	tail := data[len(data)-keepLogTail:]
	var buffer bytes.Buffer
	buffer.WriteString(truncMarker)
	buffer.Write(tail)
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("truncate log file: %w", err)
	}
	return nil
}
