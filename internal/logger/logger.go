package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

const appDir = ".plugin-updater"

var (
	instance *Logger
	once     sync.Once
)

// Logger handles all application logging
type Logger struct {
	file   *os.File
	logger *log.Logger
	mu     sync.Mutex
	path   string
	debug  bool
}

// Initialize sets up the logger singleton
func Initialize(debugMode bool) error {
	once.Do(func() {
		instance = &Logger{debug: debugMode}
		// Always try to set up logging, but gracefully fall back on failure
		if err := instance.setupLogFile(); err != nil {
			instance.setupFallbackLogger()
		}
	})
	return nil
}

// GetLogger returns the logger instance
func GetLogger() *Logger {
	if instance == nil {
		_ = Initialize(false)
	}
	return instance
}

// New builds a logger writing to w. It is not registered as the singleton.
func New(w io.Writer, debugMode bool) *Logger {
	l := &Logger{debug: debugMode}
	l.logger = newBackend(w, debugMode)
	return l
}

func newBackend(w io.Writer, debugMode bool) *log.Logger {
	level := log.InfoLevel
	if debugMode {
		level = log.DebugLevel
		// Mirror to the console while debugging.
		w = io.MultiWriter(w, os.Stderr)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "plugin-updater",
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		ReportCaller:    true,
		// user code -> Info/l.Info -> l.log -> backend
		CallerOffset: 2,
	})
}

func (l *Logger) setupLogFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(homeDir, appDir)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	l.file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	l.logger = newBackend(l.file, l.debug)
	l.path = logPath

	l.Info("=== plugin-updater started ===")
	l.Debug("Log file: %s", logPath)
	return nil
}

// setupFallbackLogger configures logging to the temp dir, or stderr as last resort
func (l *Logger) setupFallbackLogger() {
	tmpPath := filepath.Join(os.TempDir(), "plugin-updater-debug.log")
	if f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		l.file = f
		l.logger = newBackend(f, l.debug)
		l.path = tmpPath
		l.Info("Using fallback log path: %s", tmpPath)
		return
	}

	l.file = nil
	l.logger = newBackend(os.Stderr, false)
	l.path = ""
	l.Info("Falling back to stderr logging (no file)")
}

// SetLevel applies a textual level ("debug", "info", "warn", "error").
// Unknown levels leave the current level untouched.
func (l *Logger) SetLevel(level string) {
	if l == nil || l.logger == nil {
		return
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return
	}
	if l.debug && lvl > log.DebugLevel {
		// --debug wins over the config file
		return
	}
	l.mu.Lock()
	l.logger.SetLevel(lvl)
	l.mu.Unlock()
}

// Close closes the log file
func (l *Logger) Close() {
	if l.file != nil {
		l.Info("=== plugin-updater stopped ===")
		l.file.Close()
	}
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	if instance != nil && instance.path != "" {
		return instance.path
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, appDir, "debug.log")
}

func (l *Logger) log(level log.Level, format string, args ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	switch level {
	case log.DebugLevel:
		l.logger.Debugf(format, args...)
	case log.WarnLevel:
		l.logger.Warnf(format, args...)
	case log.ErrorLevel:
		l.logger.Errorf(format, args...)
	default:
		l.logger.Infof(format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(log.DebugLevel, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(log.InfoLevel, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(log.WarnLevel, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(log.ErrorLevel, format, args...)
}

// Static functions for easier access
func Debug(format string, args ...interface{}) {
	GetLogger().log(log.DebugLevel, format, args...)
}

func Info(format string, args ...interface{}) {
	GetLogger().log(log.InfoLevel, format, args...)
}

func Warn(format string, args ...interface{}) {
	GetLogger().log(log.WarnLevel, format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().log(log.ErrorLevel, format, args...)
}
