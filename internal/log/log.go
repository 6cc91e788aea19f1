// Package log is poptart's structured debug logger. Entries carry a level,
// a category and key=value fields, go to a file opened with tea.LogToFile,
// and are republished on a pubsub broker so a TUI can tail them.
// Logging stays off unless --debug or POPTART_DEBUG turns it on.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/pubsub"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related messages.
type Category string

const (
	CatPopup    Category = "popup"    // show requests, binding, dismissal
	CatRegistry Category = "registry" // view-model/view pairings
	CatConfig   Category = "config"   // config load, save, reload
	CatUI       Category = "ui"       // host and screen updates
	CatTrace    Category = "trace"    // tracing provider lifecycle
	CatCache    Category = "cache"
)

type logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
	recent   []string
}

// recentCap bounds the in-memory tail kept for Recent.
const recentCap = 500

var (
	defaultMu     sync.RWMutex
	defaultLogger *logger
)

// Init opens path for appending through tea.LogToFile and installs it as the
// process logger. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(&logger{
		closer:   f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	})
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger writing to w. Tests use it to capture output.
func InitWriter(w io.Writer) {
	install(&logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	})
}

// Reset drops the process logger; later calls are no-ops until Init runs again.
func Reset() {
	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = nil
	defaultMu.Unlock()
	if old != nil {
		old.broker.Close()
	}
}

func install(l *logger) {
	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()
	if old != nil {
		old.broker.Close()
	}
}

func current() *logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetEnabled toggles logging on or off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// 2026-01-02T15:04:05 [DEBUG] [popup] message key=value
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	entry := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	l.recent = append(l.recent, entry)
	if len(l.recent) > recentCap {
		l.recent = append(l.recent[:0], l.recent[len(l.recent)-recentCap:]...)
	}
	l.broker.Publish(pubsub.LoggedEvent, entry)
}

// Recent returns up to n of the latest entries, oldest first.
func Recent(n int) []string {
	l := current()
	if l == nil || n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(len(l.recent)-n, 0)
	return append([]string(nil), l.recent[start:]...)
}

// ClearRecent empties the tail returned by Recent.
func ClearRecent() {
	if l := current(); l != nil {
		l.mu.Lock()
		l.recent = nil
		l.mu.Unlock()
	}
}

// EntryLevel reads the level tag out of a formatted entry.
func EntryLevel(entry string) (Level, bool) {
	for _, level := range []Level{LevelError, LevelWarn, LevelInfo, LevelDebug} {
		if strings.Contains(entry, "["+level.String()+"]") {
			return level, true
		}
	}
	return LevelDebug, false
}

// Listener tails log entries inside a Bubble Tea program.
type Listener = pubsub.Listener[string]

// NewListener subscribes to log entries until ctx ends. It returns nil when
// no logger is installed.
func NewListener(ctx context.Context) *Listener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}

// EnabledFromEnv reports whether POPTART_DEBUG asks for logging.
func EnabledFromEnv() bool {
	v := strings.ToLower(os.Getenv("POPTART_DEBUG"))
	return v == "1" || v == "true" || v == "yes"
}
