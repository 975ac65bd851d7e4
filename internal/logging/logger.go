package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LogLevel defines logging severity levels.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the textual representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes to the console and to a timestamped file under logs/.
// File output keeps every level; console output starts at INFO.
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
}

var globalLogger *Logger

// Init sets up the global logger. The component name becomes part of the
// log file name, e.g. logs/api_2026-01-02_15-04-05.log.
func Init(component string) error {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join("logs", fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}

	globalLogger = &Logger{
		consoleLogger: log.New(os.Stdout, "", log.LstdFlags),
		fileLogger:    log.New(file, "", log.LstdFlags),
		file:          file,
	}
	return nil
}

// Close flushes and closes the log file.
func Close() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}
}

// Debug logs a DEBUG-level message.
func Debug(format string, args ...interface{}) {
	logMessage(DEBUG, format, args...)
}

// Info logs an INFO-level message.
func Info(format string, args ...interface{}) {
	logMessage(INFO, format, args...)
}

// Warn logs a WARN-level message.
func Warn(format string, args ...interface{}) {
	logMessage(WARN, format, args...)
}

// Error logs an ERROR-level message.
func Error(format string, args ...interface{}) {
	logMessage(ERROR, format, args...)
}

func logMessage(level LogLevel, format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}

	message := fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, args...))

	globalLogger.fileLogger.Println(message)

	if level >= INFO {
		globalLogger.consoleLogger.Println(message)
	}
}
