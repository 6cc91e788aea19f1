package host

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/poptart/internal/popup"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// screenModel is a full-screen stand-in that records what reaches it.
type screenModel struct {
	fill string
	keys []string
	msgs []tea.Msg
}

func (s *screenModel) Init() tea.Cmd { return nil }

func (s *screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *screenModel) View() string {
	line := strings.Repeat(s.fill, 30)
	return strings.TrimSuffix(strings.Repeat(line+"\n", 10), "\n")
}

// testPopup is a minimal popup.View.
type testPopup struct {
	popup.Base
	label  string
	inits  int
	keys   []string
	msgs   []tea.Msg
	width  int
	height int
}

func (p *testPopup) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *testPopup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		p.keys = append(p.keys, k.String())
		if k.Type == tea.KeyEnter {
			return p, popup.Close(p.label)
		}
		return p, nil
	}
	p.msgs = append(p.msgs, msg)
	return p, nil
}

func (p *testPopup) View() string { return "[" + p.label + "]" }

func (p *testPopup) SetSize(width, height int) {
	p.width, p.height = width, height
}

// recordingSender stands in for *tea.Program.
type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func newTestHost(t *testing.T, cfg Config) (*Host, *screenModel) {
	t.Helper()
	h := New(cfg)
	screen := &screenModel{fill: "."}
	h.PushScreen("home", screen)
	h.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	return h, screen
}

func current(t *testing.T, h *Host) popup.Screen {
	t.Helper()
	s, err := h.CurrentScreen()
	require.NoError(t, err)
	return s
}

func TestCurrentScreen_Empty(t *testing.T) {
	h := New(DefaultConfig())

	s, err := h.CurrentScreen()
	require.ErrorIs(t, err, popup.ErrNoActiveScreen)
	require.Nil(t, s)
	require.Empty(t, h.View())
}

func TestCurrentScreen_TopOfStack(t *testing.T) {
	h := New(DefaultConfig())
	h.PushScreen("home", &screenModel{fill: "."})
	h.PushScreen("details", &screenModel{fill: "#"})

	require.Equal(t, "details", current(t, h).ID())

	popped := h.PopScreen()
	require.Equal(t, "details", popped.ID())
	require.Equal(t, "home", current(t, h).ID())
}

func TestShow_InitsOnNextUpdateAndRenders(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	view := &testPopup{label: "hello"}

	require.NoError(t, h.Show(current(t, h), view))
	require.Equal(t, 1, h.Depth())
	require.Zero(t, view.inits)

	h.Update(ShownMsg{})
	require.Equal(t, 1, view.inits)
	require.Equal(t, 30, view.width, "size is handed to the popup before Init")

	h.Update(ShownMsg{})
	require.Equal(t, 1, view.inits, "Init runs once")

	out := h.View()
	require.Contains(t, out, "[hello]")
	require.Contains(t, out, "....")
}

func TestShow_NotifiesProgram(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	sender := &recordingSender{}
	h.SetProgram(sender)

	require.NoError(t, h.Show(current(t, h), &testPopup{label: "a"}))
	require.Equal(t, 1, sender.count())
	require.IsType(t, ShownMsg{}, sender.msgs[0])
}

func TestShowAsync_CloseMsgResolvesPending(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	pending := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "ok"})

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	h.Update(popup.CloseMsg{Result: "ok"})

	result, err := pending.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Zero(t, h.Depth())
}

func TestEscape_DismissesWithNil(t *testing.T) {
	h, screen := newTestHost(t, DefaultConfig())
	view := &testPopup{label: "esc"}
	pending := h.ShowAsync(context.Background(), current(t, h), view)

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})

	result, err := pending.Await(context.Background())
	require.NoError(t, err)
	require.Nil(t, result)
	require.Empty(t, view.keys)
	require.Empty(t, screen.keys)
}

func TestCtrlC_QuitsEvenWithPopupShown(t *testing.T) {
	h, screen := newTestHost(t, DefaultConfig())
	view := &testPopup{label: "busy"}
	require.NoError(t, h.Show(current(t, h), view))

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, view.keys)
	require.Empty(t, screen.keys)
}

func TestEscape_ForwardedWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DismissOnEscape = false
	h, _ := newTestHost(t, cfg)
	view := &testPopup{label: "stay"}
	require.NoError(t, h.Show(current(t, h), view))

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, 1, h.Depth())
	require.Equal(t, []string{"esc"}, view.keys)
}

func TestKeys_RouteToTopPopupThenScreen(t *testing.T) {
	h, screen := newTestHost(t, DefaultConfig())
	lower := &testPopup{label: "lower"}
	upper := &testPopup{label: "upper"}
	require.NoError(t, h.Show(current(t, h), lower))
	require.NoError(t, h.Show(current(t, h), upper))

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Equal(t, []string{"x"}, upper.keys)
	require.Empty(t, lower.keys)

	h.Update(popup.CloseMsg{})
	h.Update(popup.CloseMsg{})
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.Equal(t, []string{"y"}, screen.keys)
}

// messages runs cmd and flattens any batches it yields.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestClose_CarriesEmittingPopup(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	view := &testPopup{label: "mine"}
	require.NoError(t, h.Show(current(t, h), view))
	h.Update(ShownMsg{})

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := messages(cmd)
	require.Len(t, msgs, 1)
	closeMsg, ok := msgs[0].(popup.CloseMsg)
	require.True(t, ok)
	require.NotEmpty(t, closeMsg.Popup)
	require.Equal(t, "mine", closeMsg.Result)
}

func TestClose_StaleCloseLeavesNextPopup(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	lower := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "lower"})
	upper := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "upper"})
	h.Update(ShownMsg{})

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pendingClose := messages(cmd)
	require.Len(t, pendingClose, 1)

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result, err := upper.Await(context.Background())
	require.NoError(t, err)
	require.Nil(t, result, "esc won the race")

	_, next := h.Update(pendingClose[0])
	require.Empty(t, messages(next))
	require.Equal(t, 1, h.Depth())
	require.False(t, lower.Settled())
}

func TestMessages_ReachBuriedPopups(t *testing.T) {
	type tick struct{}
	h, screen := newTestHost(t, DefaultConfig())
	lower := &testPopup{label: "lower"}
	upper := &testPopup{label: "upper"}
	require.NoError(t, h.Show(current(t, h), lower))
	require.NoError(t, h.Show(current(t, h), upper))
	h.Update(ShownMsg{})

	h.Update(tick{})

	require.Contains(t, lower.msgs, tea.Msg(tick{}))
	require.Contains(t, upper.msgs, tea.Msg(tick{}))
	require.Contains(t, screen.msgs, tea.Msg(tick{}))
}

func TestCancel_DismissesPopup(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	pending := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "c"})

	pending.Cancel()

	_, err := pending.Await(context.Background())
	require.ErrorIs(t, err, popup.ErrCanceled)
	require.Zero(t, h.Depth())
}

func TestContextDone_DismissesWithNil(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	pending := h.ShowAsync(ctx, current(t, h), &testPopup{label: "ctx"})

	cancel()

	waitCtx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	result, err := pending.Await(waitCtx)
	require.NoError(t, err)
	require.Nil(t, result)
	require.Eventually(t, func() bool { return h.Depth() == 0 }, time.Second, time.Millisecond)
}

func TestShowAsync_ScreenGone(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	stale := current(t, h)
	h.PopScreen()

	pending := h.ShowAsync(context.Background(), stale, &testPopup{label: "late"})

	_, err := pending.Await(context.Background())
	require.ErrorIs(t, err, popup.ErrNoActiveScreen)
}

func TestShow_ScreenGone(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	stale := current(t, h)
	h.PopScreen()

	err := h.Show(stale, &testPopup{label: "late"})
	require.ErrorIs(t, err, popup.ErrNoActiveScreen)
	require.Zero(t, h.Depth())
}

func TestPopScreen_ResolvesOpenPopups(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	pending := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "p"})

	h.PopScreen()

	result, err := pending.Await(context.Background())
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestWindowSize_ResizesShownPopups(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	view := &testPopup{label: "size"}
	require.NoError(t, h.Show(current(t, h), view))

	h.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, 80, view.width)
	require.Equal(t, 24, view.height)
}

func TestLightDismiss_ClickOutside(t *testing.T) {
	h, _ := newTestHost(t, DefaultConfig())
	pending := h.ShowAsync(context.Background(), current(t, h), &testPopup{label: "light-dismiss"})
	h.Update(ShownMsg{})

	top := h.topEntry()
	require.NotNil(t, top)
	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = h.View()
		z = zone.Get(zoneID(top))
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	// inside keeps it open
	h.Update(tea.MouseMsg{X: z.StartX + 1, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Equal(t, 1, h.Depth())

	h.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Zero(t, h.Depth())

	result, err := pending.Await(context.Background())
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestDismissedMsg_ReachesScreen(t *testing.T) {
	h, screen := newTestHost(t, DefaultConfig())
	require.NoError(t, h.Show(current(t, h), &testPopup{label: "d"}))

	_, cmd := h.Update(popup.CloseMsg{Result: 7})
	require.NotNil(t, cmd)
	h.Update(cmd())

	last := screen.msgs[len(screen.msgs)-1]
	dismissed, ok := last.(DismissedMsg)
	require.True(t, ok)
	require.Equal(t, 7, dismissed.Result)
	require.Equal(t, "home", dismissed.Screen)
}
