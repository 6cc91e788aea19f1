package popups

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/pubsub"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

const (
	// DefaultLogLimit is how many entries a logs popup keeps.
	DefaultLogLimit = 200

	logsMaxHeight = 12
	logsMinHeight = 3
	logsMaxWidth  = 100
)

// LogsViewModel holds the debug log tail shown by the logs popup.
// Arguments: "level" (debug, info, warn or error), "limit" and
// "categories", a list of log categories to keep.
type LogsViewModel struct {
	popup.Observable

	mu         sync.RWMutex
	minLevel   log.Level
	limit      int
	categories []string
	entries    []string
}

// NewLogsViewModel returns a view-model showing every level.
func NewLogsViewModel() *LogsViewModel {
	return &LogsViewModel{limit: DefaultLogLimit}
}

// SetArguments implements popup.ArgumentsReceiver.
func (vm *LogsViewModel) SetArguments(args popup.Arguments) {
	if level, err := log.ParseLevel(args.String("level")); err == nil {
		vm.SetMinLevel(level)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if args.Has("limit") {
		if n, err := args.Int("limit"); err == nil && n > 0 {
			vm.limit = n
		}
	}
	if args.Has("categories") {
		vm.categories = args.StringSlice("categories")
	}
}

// Limit returns the number of entries kept.
func (vm *LogsViewModel) Limit() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.limit
}

// MinLevel returns the lowest level shown.
func (vm *LogsViewModel) MinLevel() log.Level {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.minLevel
}

// SetMinLevel changes the level filter and notifies subscribers.
func (vm *LogsViewModel) SetMinLevel(level log.Level) {
	vm.mu.Lock()
	vm.minLevel = level
	vm.mu.Unlock()
	vm.NotifyChanged("MinLevel", level)
}

// Append records entry, dropping the oldest past the limit.
func (vm *LogsViewModel) Append(entry string) {
	entry = strings.TrimSuffix(entry, "\n")
	vm.mu.Lock()
	vm.entries = append(vm.entries, entry)
	if over := len(vm.entries) - vm.limit; over > 0 {
		vm.entries = slices.Delete(vm.entries, 0, over)
	}
	vm.mu.Unlock()
	vm.NotifyChanged("Entries", entry)
}

// Clear drops every entry.
func (vm *LogsViewModel) Clear() {
	vm.mu.Lock()
	vm.entries = nil
	vm.mu.Unlock()
	vm.NotifyChanged("Entries", nil)
}

// Entries returns the entries passing the level and category filters.
func (vm *LogsViewModel) Entries() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	var out []string
	for _, e := range vm.entries {
		if level, ok := log.EntryLevel(e); ok && level < vm.minLevel {
			continue
		}
		if len(vm.categories) > 0 && !vm.hasCategory(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (vm *LogsViewModel) hasCategory(entry string) bool {
	for _, c := range vm.categories {
		if strings.Contains(entry, "["+c+"]") {
			return true
		}
	}
	return false
}

// logLine is a log entry addressed to one logs popup.
type logLine struct {
	owner *Logs
	entry string
}

// Logs tails the debug log in a scrollable popup. d, i, w and e pick the
// lowest level shown, c clears, j and k scroll, enter or q closes.
type Logs struct {
	popup.Base
	minWidth int
	width    int
	height   int

	viewport viewport.Model
	cancel   context.CancelFunc
	listener *log.Listener
}

// NewLogs returns an unbound logs popup.
func NewLogs() *Logs {
	return &Logs{viewport: viewport.New(DefaultMinWidth, logsMaxHeight)}
}

func (l *Logs) viewModel() *LogsViewModel {
	if vm, ok := l.BindingContext().(*LogsViewModel); ok {
		return vm
	}
	vm := NewLogsViewModel()
	l.SetBindingContext(vm)
	return vm
}

// Init implements tea.Model. It seeds the view-model with the recent tail
// and follows new entries while logging is on.
func (l *Logs) Init() tea.Cmd {
	vm := l.viewModel()
	for _, e := range log.Recent(vm.Limit()) {
		vm.Append(e)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.listener = log.NewListener(ctx)
	l.refresh()
	l.viewport.GotoBottom()
	if l.listener == nil {
		return nil
	}
	return l.listen()
}

func (l *Logs) listen() tea.Cmd {
	next := l.listener.Listen()
	return func() tea.Msg {
		ev, ok := next().(pubsub.Event[string])
		if !ok {
			return nil
		}
		return logLine{owner: l, entry: ev.Payload}
	}
}

// Dismissed implements popup.Dismisser.
func (l *Logs) Dismissed() {
	if l.cancel != nil {
		l.cancel()
	}
}

// Update implements tea.Model.
func (l *Logs) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	vm := l.viewModel()
	switch msg := msg.(type) {
	case logLine:
		if msg.owner != l {
			return l, nil
		}
		atBottom := l.viewport.AtBottom()
		vm.Append(msg.entry)
		l.refresh()
		if atBottom {
			l.viewport.GotoBottom()
		}
		return l, l.listen()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q":
			return l, popup.Close(nil)
		case "c":
			log.ClearRecent()
			vm.Clear()
		case "d":
			vm.SetMinLevel(log.LevelDebug)
		case "i":
			vm.SetMinLevel(log.LevelInfo)
		case "w":
			vm.SetMinLevel(log.LevelWarn)
		case "e":
			vm.SetMinLevel(log.LevelError)
		case "j", "down":
			l.viewport.ScrollDown(1)
			return l, nil
		case "k", "up":
			l.viewport.ScrollUp(1)
			return l, nil
		case "g":
			l.viewport.GotoTop()
			return l, nil
		case "G":
			l.viewport.GotoBottom()
			return l, nil
		default:
			return l, nil
		}
		l.refresh()
	}
	return l, nil
}

// contentWidth grows with the terminal up to logsMaxWidth.
func (l *Logs) contentWidth() int {
	return max(l.minWidth, DefaultMinWidth, min(l.width-8, logsMaxWidth))
}

func (l *Logs) refresh() {
	width := l.contentWidth()
	height := logsMaxHeight
	if l.height > 0 {
		height = max(min(logsMaxHeight, l.height-10), logsMinHeight)
	}
	l.viewport.Width = width
	l.viewport.Height = height

	entries := l.viewModel().Entries()
	if len(entries) == 0 {
		unlock := styles.RLock()
		l.viewport.SetContent(styles.HintStyle.Render("No logs to display"))
		unlock()
		return
	}

	unlock := styles.RLock()
	defer unlock()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = entryStyle(e).Render(ansi.Truncate(e, width, "…"))
	}
	l.viewport.SetContent(strings.Join(lines, "\n"))
}

// entryStyle must be called with the styles read lock held.
func entryStyle(entry string) lipgloss.Style {
	level, _ := log.EntryLevel(entry)
	switch level {
	case log.LevelError, log.LevelWarn:
		return styles.ErrorStyle
	case log.LevelInfo:
		return styles.BodyStyle
	default:
		return styles.HintStyle
	}
}

// View implements tea.Model.
func (l *Logs) View() string {
	body := l.viewport.View() + "\n\n" + hint(levelHint(l.viewModel().MinLevel()))
	return frame("Logs", body, l.contentWidth())
}

func levelHint(active log.Level) string {
	parts := []string{"c clear"}
	for _, level := range []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError} {
		label := strings.ToLower(level.String())
		item := label[:1] + " " + label
		if level == active {
			item = "[" + item + "]"
		}
		parts = append(parts, item)
	}
	return strings.Join(parts, "  ")
}

// SetMinWidth sets the content width floor.
func (l *Logs) SetMinWidth(w int) {
	l.minWidth = w
}

// SetSize implements popup.Sizer.
func (l *Logs) SetSize(width, height int) {
	l.width, l.height = width, height
	l.refresh()
}
