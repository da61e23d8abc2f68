package eventwrap

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// Level is the minimum severity a writer logger prints.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelDisabled
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel maps a level name to a Level. Unknown names report false.
func ParseLevel(raw string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "disabled", "off", "none":
		return LevelDisabled, true
	default:
		return LevelInfo, false
	}
}

// writerLogger writes plain text lines to an io.Writer.
type writerLogger struct {
	mu     *sync.Mutex
	writer io.Writer
	level  Level
	fields map[string]any
	now    func() time.Time
}

// NewWriterLogger returns a logger printing entries at or above level to writer.
func NewWriterLogger(writer io.Writer, level Level) logger {
	return &writerLogger{
		mu:     &sync.Mutex{},
		writer: writer,
		level:  level,
		fields: make(map[string]any),
		now:    time.Now,
	}
}

func (l *writerLogger) WithField(key string, value any) logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &writerLogger{
		mu:     l.mu,
		writer: l.writer,
		level:  l.level,
		fields: fields,
		now:    l.now,
	}
}

// formatFields renders fields sorted by key so lines are stable.
func (l *writerLogger) formatFields() string {
	if len(l.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(" [")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
	}
	b.WriteString("]")
	return b.String()
}

func (l *writerLogger) log(level Level, msg string) {
	if level < l.level {
		return
	}

	line := fmt.Sprintf("[%s] %s%s: %s\n",
		l.now().Format("2006-01-02 15:04:05"), levelNames[level], l.formatFields(), strings.TrimSuffix(msg, "\n"))

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

func (l *writerLogger) Debug(args ...any) { l.log(LevelDebug, fmt.Sprint(args...)) }

func (l *writerLogger) Debugf(format string, args ...any) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Debugln(args ...any) { l.log(LevelDebug, fmt.Sprintln(args...)) }

func (l *writerLogger) Info(args ...any) { l.log(LevelInfo, fmt.Sprint(args...)) }

func (l *writerLogger) Infof(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Infoln(args ...any) { l.log(LevelInfo, fmt.Sprintln(args...)) }

func (l *writerLogger) Warn(args ...any) { l.log(LevelWarn, fmt.Sprint(args...)) }

func (l *writerLogger) Warnf(format string, args ...any) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Warnln(args ...any) { l.log(LevelWarn, fmt.Sprintln(args...)) }

func (l *writerLogger) Error(args ...any) { l.log(LevelError, fmt.Sprint(args...)) }

func (l *writerLogger) Errorf(format string, args ...any) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Errorln(args ...any) { l.log(LevelError, fmt.Sprintln(args...)) }
