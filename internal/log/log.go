// Package log writes categorized debug entries for ezwrite.
//
// The terminal belongs to the editor, so nothing is written unless Init has
// been called (--debug or EZWRITE_DEBUG). Every entry is also published on a
// broker so the status bar can show the latest one.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/ezwrite/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case. The empty string is debug.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelDebug, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related log messages.
type Category string

const (
	CatTree    Category = "tree"    // Entity tree construction and cleanup
	CatEdit    Category = "edit"    // Editing commands and delegation chain
	CatLayout  Category = "layout"  // Layout scheduling and passes
	CatInput   Category = "input"   // Key and mouse events
	CatImport  Category = "import"  // Plain text and markdown import
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatCache   Category = "cache"
	CatTrace   Category = "trace" // Tracing provider lifecycle
	CatState   Category = "state" // Remembered cursor positions
	CatUI      Category = "ui"
)

// Entry is one log record.
type Entry struct {
	Time     time.Time
	Level    Level
	Category Category
	Message  string
	Fields   []any
}

// String formats the entry as
//
//	2026-03-02T10:45:00 [ERROR] [edit] message key=value key2=value2
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", e.Time.Format("2006-01-02T15:04:05"), e.Level, e.Category, e.Message)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Fields[i], e.Fields[i+1])
	}
	if len(e.Fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", e.Fields[len(e.Fields)-1])
	}
	return b.String()
}

// Summary is the short form shown in the status bar.
func (e Entry) Summary() string {
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

type logger struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel Level
	broker   *pubsub.Broker[Entry]
}

var current atomic.Pointer[logger]

// Init opens path with tea.LogToFile and routes all entries to it. The
// returned cleanup closes the file and disables logging.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "ezwrite")
	if err != nil {
		return nil, err
	}
	cleanup := InitWriter(f)
	return func() {
		cleanup()
		_ = f.Close()
	}, nil
}

// InitWriter routes entries to an arbitrary writer. The returned cleanup
// disables logging and closes the broker.
func InitWriter(out io.Writer) func() {
	l := &logger{w: out, minLevel: LevelDebug, broker: pubsub.NewBroker[Entry]()}
	current.Store(l)
	return func() {
		if current.CompareAndSwap(l, nil) {
			l.broker.Close()
		}
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text))
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current.Load()
	if l == nil {
		return
	}

	l.mu.Lock()
	if level < l.minLevel {
		l.mu.Unlock()
		return
	}
	e := Entry{Time: time.Now(), Level: level, Category: cat, Message: msg, Fields: fields}
	_, _ = io.WriteString(l.w, e.String()+"\n")
	l.mu.Unlock()

	l.broker.Publish(pubsub.CreatedEvent, e)
}

// LogEvent is the tea.Msg carrying a published entry.
type LogEvent = pubsub.Event[Entry]

// NewListener subscribes to entries for the lifetime of ctx. It returns nil
// when logging is off.
func NewListener(ctx context.Context) *pubsub.Listener[Entry] {
	l := current.Load()
	if l == nil {
		return nil
	}
	return pubsub.Listen[Entry](ctx, l.broker)
}
