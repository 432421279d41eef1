package logging

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileSink serializes writes from every logger derived off one file
type fileSink struct {
	mu sync.Mutex
	f  *os.File
}

// FileLogger writes tab-separated "time name LEVEL message" lines to a log
// file inside a model directory. It starts at debug level, matching the
// trainer's log files. Derived loggers from WithFields share the underlying
// file.
type FileLogger struct {
	sink   *fileSink
	name   string
	level  Level
	fields Fields
}

// NewFileLogger creates dir if needed and opens (appending) filename inside
// it. name tags every line, conventionally the model directory's base name.
func NewFileLogger(dir, filename, name string) (*FileLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file %s: %w", path, err)
	}
	if name == "" {
		name = filepath.Base(dir)
	}
	return &FileLogger{
		sink:   &fileSink{f: f},
		name:   name,
		level:  DebugLevel,
		fields: make(Fields),
	}, nil
}

// Close closes the underlying log file
func (l *FileLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.f.Close()
}

func (l *FileLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < l.level {
		return
	}

	allFields := make(Fields)
	maps.Copy(allFields, l.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}

	line := msg
	if err != nil {
		line += fmt.Sprintf(": %v", err)
	}
	if len(allFields) > 0 {
		line += fmt.Sprintf(" %+v", allFields)
	}

	stamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.sink.mu.Lock()
	fmt.Fprintf(l.sink.f, "%s\t%s\t%s\t%s\n", stamp, l.name, level.String(), line)
	l.sink.mu.Unlock()

	if level == FatalLevel {
		l.sink.f.Close()
		os.Exit(1)
	}
}

func (l *FileLogger) Debug(msg string, fields ...Fields) {
	l.log(DebugLevel, nil, msg, fields...)
}

func (l *FileLogger) Info(msg string, fields ...Fields) {
	l.log(InfoLevel, nil, msg, fields...)
}

func (l *FileLogger) Warn(msg string, fields ...Fields) {
	l.log(WarnLevel, nil, msg, fields...)
}

func (l *FileLogger) Error(err error, msg string, fields ...Fields) {
	l.log(ErrorLevel, err, msg, fields...)
}

func (l *FileLogger) Fatal(err error, msg string, fields ...Fields) {
	l.log(FatalLevel, err, msg, fields...)
}

func (l *FileLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields)
	maps.Copy(newFields, l.fields)
	maps.Copy(newFields, fields)

	return &FileLogger{
		sink:   l.sink,
		name:   l.name,
		level:  l.level,
		fields: newFields,
	}
}

func (l *FileLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := ctx.Value(contextFieldsKey{}).(Fields); ok {
		return l.WithFields(fields)
	}
	return l
}

func (l *FileLogger) SetLevel(level Level) {
	l.level = level
}
