package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, defaulting to INFO
func ParseLevel(name string) Level {
	switch name {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "warning", "WARN", "WARNING":
		return WARN
	case "error", "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes timestamped leveled lines to one or more sinks. Line format
// is "<timestamp> - <LEVEL> - <message>", which the dashboard's log follower
// parses back.
type Logger struct {
	mu      sync.Mutex
	level   Level
	output  io.Writer
	logFile *os.File
	now     func() time.Time
}

// NewLogger creates a logger writing to the given sink
func NewLogger(level Level, output io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: output,
		now:    time.Now,
	}
}

// NewMonitorLogger creates the monitor's logger: a per-process log file
// named dicom_monitor_pid_<pid>.log inside logDir, mirrored to stderr.
// The log directory is created if it does not exist.
func NewMonitorLogger(logDir string, level Level) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	logPath := MonitorLogPath(logDir, os.Getpid())
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	return &Logger{
		level:   level,
		output:  io.MultiWriter(logFile, os.Stderr),
		logFile: logFile,
		now:     time.Now,
	}, nil
}

// MonitorLogPath returns the per-process monitor log file path for a pid.
func MonitorLogPath(logDir string, pid int) string {
	return filepath.Join(logDir, fmt.Sprintf("dicom_monitor_pid_%d.log", pid))
}

// Close releases the underlying log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// Path returns the log file path, empty for pure-writer loggers
func (l *Logger) Path() string {
	if l.logFile == nil {
		return ""
	}
	return l.logFile.Name()
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.output == nil {
		return
	}

	ts := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.output, "%s - %s - %s\n", ts, level, fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Infof logs at INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warnf logs at WARNING level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Errorf logs at ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}
