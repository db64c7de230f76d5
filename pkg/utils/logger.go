package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a level name such as "debug" to a LogLevel
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ERROR":
		return ErrorLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "TRACE":
		return TraceLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}

// Logger is a leveled, indenting logger backed by zap
type Logger struct {
	Level      LogLevel
	Prefix     string
	IndentSize int

	mu     sync.Mutex
	indent int
	zl     *zap.Logger
	closer io.Closer
}

// NewLogger creates a new logger with the specified verbosity level
func NewLogger(level LogLevel) *Logger {
	return newLogger(level, os.Stdout, nil)
}

// NewFileLogger creates a new logger that writes to a file
func NewFileLogger(level LogLevel, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return newLogger(level, file, file), nil
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Level: ErrorLevel, IndentSize: 2, zl: zap.NewNop()}
}

func newLogger(level LogLevel, w io.Writer, closer io.Closer) *Logger {
	return &Logger{
		Level:      level,
		IndentSize: 2,
		zl:         newZap(w),
		closer:     closer,
	}
}

// newZap builds a console logger. Level filtering happens in Logger.log,
// so the core accepts everything from debug up.
func newZap(w io.Writer) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.zl = newZap(w)
}

// SetPrefix sets a prefix for all log messages
func (l *Logger) SetPrefix(prefix string) {
	l.Prefix = prefix
}

// With returns a child logger that adds fields to every entry. The child
// takes over closing the log file on Sync.
func (l *Logger) With(fields ...zap.Field) *Logger {
	l.mu.Lock()
	indent := l.indent
	l.mu.Unlock()

	child := &Logger{
		Level:      l.Level,
		Prefix:     l.Prefix,
		IndentSize: l.IndentSize,
		indent:     indent,
		zl:         l.zl.With(fields...),
		closer:     l.closer,
	}
	l.closer = nil
	return child
}

// Indent increases the indentation level
func (l *Logger) Indent() {
	l.mu.Lock()
	l.indent++
	l.mu.Unlock()
}

// Outdent decreases the indentation level
func (l *Logger) Outdent() {
	l.mu.Lock()
	if l.indent > 0 {
		l.indent--
	}
	l.mu.Unlock()
}

// Sync flushes buffered entries and closes the log file, if any
func (l *Logger) Sync() error {
	err := l.zl.Sync()
	if l.closer != nil {
		if cerr := l.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		l.closer = nil
	}
	return err
}

// log logs a message at the specified level
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level > l.Level {
		return
	}

	var builder strings.Builder

	if l.Prefix != "" {
		builder.WriteString(l.Prefix)
		builder.WriteString(": ")
	}

	l.mu.Lock()
	indent := l.indent
	l.mu.Unlock()
	if indent > 0 {
		builder.WriteString(strings.Repeat(" ", indent*l.IndentSize))
	}

	builder.WriteString(fmt.Sprintf(format, args...))
	msg := builder.String()

	switch level {
	case ErrorLevel:
		l.zl.Error(msg)
	case WarningLevel:
		l.zl.Warn(msg)
	case InfoLevel:
		l.zl.Info(msg)
	default:
		l.zl.Debug(msg)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ErrorLevel, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(WarningLevel, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

// Trace logs a trace message (highest verbosity)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(TraceLevel, "TRACE "+format, args...)
}

// Circuit logs information about circuit structure
func (l *Logger) Circuit(format string, args ...interface{}) {
	l.log(DebugLevel, "CIRCUIT: "+format, args...)
}

// Algorithm logs information about vector generation
func (l *Logger) Algorithm(format string, args ...interface{}) {
	l.log(DebugLevel, "ALGORITHM: "+format, args...)
}

// Evaluation logs a single circuit evaluation
func (l *Logger) Evaluation(format string, args ...interface{}) {
	l.log(TraceLevel, "EVALUATION: "+format, args...)
}
