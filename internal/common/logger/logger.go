package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelQuiet // No output
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// FileOptions configures the rotating log file
type FileOptions struct {
	Path       string // defaults to LogDir()/aurupd.log
	MaxSizeMB  int
	MaxBackups int
}

// Logger handles application logging.
// Terminal output is filtered by level; the log file, when enabled,
// records every message as a JSON line.
type Logger struct {
	level      Level
	output     io.Writer
	fileWriter *lumberjack.Logger
	fileLog    *zap.Logger
	mu         sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the default logger instance
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(os.Stderr)
	})
	return defaultLogger
}

// New creates a logger writing to output at info level
func New(output io.Writer) *Logger {
	return &Logger{
		level:  LevelInfo,
		output: output,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose enables debug output
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LevelDebug)
	}
}

// SetQuiet disables all output except errors
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.SetLevel(LevelError)
	}
}

// EnableFileLogging enables logging to a rotating file
func (l *Logger) EnableFileLogging(opts FileOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if opts.Path == "" {
		logDir, err := LogDir()
		if err != nil {
			return err
		}
		opts.Path = filepath.Join(logDir, "aurupd.log")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if l.fileLog != nil {
		_ = l.fileLog.Sync()
		_ = l.fileWriter.Close()
	}

	l.fileWriter = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(l.fileWriter),
		zapcore.DebugLevel,
	)
	l.fileLog = zap.New(core)
	return nil
}

// Close flushes and closes the log file if open
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileLog != nil {
		_ = l.fileLog.Sync()
		_ = l.fileWriter.Close()
		l.fileLog = nil
		l.fileWriter = nil
	}
}

// LogDir returns the log directory path
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// XDG_STATE_HOME is the standard location for logs
	xdgState := os.Getenv("XDG_STATE_HOME")
	if xdgState == "" {
		xdgState = filepath.Join(home, ".local", "state")
	}

	return filepath.Join(xdgState, "aurupd", "logs"), nil
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if level >= l.level {
		fmt.Fprint(l.output, msg+"\n")
	}

	if l.fileLog != nil {
		switch level {
		case LevelDebug:
			l.fileLog.Debug(msg)
		case LevelInfo:
			l.fileLog.Info(msg)
		case LevelWarn:
			l.fileLog.Warn(msg)
		default:
			l.fileLog.Error(msg)
		}
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// String returns the level name
func (lv Level) String() string {
	if name, ok := levelNames[lv]; ok {
		return name
	}
	return "QUIET"
}

// Package-level convenience functions
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }
func Info(format string, args ...interface{})  { Default().Info(format, args...) }
func Warn(format string, args ...interface{})  { Default().Warn(format, args...) }
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
func SetVerbose(v bool)                        { Default().SetVerbose(v) }
func SetQuiet(q bool)                          { Default().SetQuiet(q) }
func EnableFileLogging(opts FileOptions) error { return Default().EnableFileLogging(opts) }
func Close()                                   { Default().Close() }
