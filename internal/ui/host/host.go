// Package host is the Bubble Tea model that owns the screen stack and each
// screen's popups. It is the presenter and screen locator behind
// popup.Service.
//
// Show and ShowAsync are safe to call from tea.Cmd goroutines. Everything
// else runs on the program's update loop.
package host

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/overlay"
)

// Config controls popup placement and dismissal.
type Config struct {
	Position overlay.Position
	// PadY is the edge gap for top and bottom placement.
	PadY int
	// DismissOnEscape closes the top popup with a nil result on esc.
	DismissOnEscape bool
	// LightDismiss closes the top popup with a nil result on a click
	// outside it.
	LightDismiss bool
}

// DefaultConfig returns centered popups dismissable by esc and outside click.
func DefaultConfig() Config {
	return Config{Position: overlay.Center, PadY: 1, DismissOnEscape: true, LightDismiss: true}
}

// Sender delivers a message to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// ShownMsg reports a popup was pushed from outside the update loop.
type ShownMsg struct {
	Screen string
	Popup  string
}

// DismissedMsg reports a popup left the stack.
type DismissedMsg struct {
	Screen string
	Popup  string
	Result any
}

// Host implements tea.Model, popup.Presenter and popup.ScreenLocator.
type Host struct {
	mu      sync.Mutex
	screens stack
	program Sender
	cfg     Config

	width  int
	height int
}

var (
	_ tea.Model           = (*Host)(nil)
	_ popup.Presenter     = (*Host)(nil)
	_ popup.ScreenLocator = (*Host)(nil)
)

// New returns a host with no screens.
func New(cfg Config) *Host {
	return &Host{cfg: cfg}
}

// SetProgram connects the host to the running program so popups shown from
// command goroutines trigger a redraw.
func (h *Host) SetProgram(p Sender) {
	h.mu.Lock()
	h.program = p
	h.mu.Unlock()
}

// ReconfiguredMsg asks for a redraw after SetConfig.
type ReconfiguredMsg struct{}

// SetConfig replaces the placement and dismissal settings.
func (h *Host) SetConfig(cfg Config) {
	h.mu.Lock()
	h.cfg = cfg
	program := h.program
	h.mu.Unlock()

	if program != nil {
		program.Send(ReconfiguredMsg{})
	}
}

// PushScreen makes model the current screen under id and returns it.
func (h *Host) PushScreen(id string, model tea.Model) *Screen {
	screen := &Screen{id: id, model: model}
	h.mu.Lock()
	h.screens.push(screen)
	h.mu.Unlock()
	log.Debug(log.CatUI, "screen pushed", "screen", id)
	return screen
}

// PopScreen removes the current screen. Its open popups are dismissed with
// a nil result.
func (h *Host) PopScreen() *Screen {
	h.mu.Lock()
	screen := h.screens.pop()
	var orphans []*shownPopup
	if screen != nil {
		orphans = screen.popups
		screen.popups = nil
	}
	h.mu.Unlock()

	for _, p := range orphans {
		settle(p, nil)
	}
	if screen != nil {
		log.Debug(log.CatUI, "screen popped", "screen", screen.id, "dismissed", len(orphans))
	}
	return screen
}

// CurrentScreen implements popup.ScreenLocator.
func (h *Host) CurrentScreen() (popup.Screen, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	top := h.screens.peek()
	if top == nil {
		return nil, popup.ErrNoActiveScreen
	}
	return top, nil
}

// Show implements popup.Presenter. It fails with popup.ErrNoActiveScreen
// when screen has left the stack.
func (h *Host) Show(screen popup.Screen, view popup.View) error {
	_, err := h.push(screen, view, nil)
	return err
}

// ShowAsync implements popup.Presenter. The returned Pending settles with
// the popup's close result. A done ctx or Pending.Cancel dismisses it.
func (h *Host) ShowAsync(ctx context.Context, screen popup.Screen, view popup.View) *popup.Pending {
	pending := popup.NewPending()
	id, err := h.push(screen, view, pending)
	if err != nil {
		pending.Reject(err)
		return pending
	}
	pending.OnCancel(func() { h.dismiss(screen.ID(), id, nil, false) })

	go func() {
		select {
		case <-ctx.Done():
			h.dismiss(screen.ID(), id, nil, true)
		case <-pending.Done():
		}
	}()
	return pending
}

func (h *Host) push(screen popup.Screen, view popup.View, pending *popup.Pending) (string, error) {
	entry := &shownPopup{id: uuid.NewString(), view: view, pending: pending}

	h.mu.Lock()
	target := h.screens.find(screen.ID())
	if target == nil {
		h.mu.Unlock()
		return "", fmt.Errorf("%w: screen %q is not on the stack", popup.ErrNoActiveScreen, screen.ID())
	}
	target.popups = append(target.popups, entry)
	program := h.program
	h.mu.Unlock()

	log.Debug(log.CatUI, "popup shown", "screen", screen.ID(), "popup", entry.id, "depth", target.Depth())
	if program != nil {
		program.Send(ShownMsg{Screen: screen.ID(), Popup: entry.id})
	}
	return entry.id, nil
}

// dismiss removes a popup and settles its Pending with result when resolve
// is set. Unknown ids are ignored.
func (h *Host) dismiss(screenID, popupID string, result any, resolve bool) {
	h.mu.Lock()
	var removed *shownPopup
	if screen := h.screens.find(screenID); screen != nil {
		removed = screen.remove(popupID)
	}
	program := h.program
	h.mu.Unlock()

	if removed == nil {
		return
	}
	if resolve {
		settle(removed, result)
	} else if d, ok := removed.view.(popup.Dismisser); ok {
		d.Dismissed()
	}
	log.Debug(log.CatUI, "popup dismissed", "screen", screenID, "popup", popupID)
	if program != nil {
		program.Send(DismissedMsg{Screen: screenID, Popup: popupID, Result: result})
	}
}

func settle(p *shownPopup, result any) {
	if d, ok := p.view.(popup.Dismisser); ok {
		d.Dismissed()
	}
	if p.pending != nil {
		p.pending.Resolve(result)
	}
}

// closePopup handles a CloseMsg stamped with the popup's id. Popups that
// were already dismissed are ignored.
func (h *Host) closePopup(id string, result any) tea.Cmd {
	h.mu.Lock()
	screen := h.screens.locate(id)
	var closed *shownPopup
	if screen != nil {
		closed = screen.remove(id)
	}
	h.mu.Unlock()

	if closed == nil {
		log.Debug(log.CatUI, "stale close dropped", "popup", id)
		return nil
	}
	settle(closed, result)
	log.Debug(log.CatUI, "popup closed", "screen", screen.id, "popup", id)
	return func() tea.Msg { return DismissedMsg{Screen: screen.id, Popup: id, Result: result} }
}

// dismissTop closes the current screen's top popup.
func (h *Host) dismissTop(result any) tea.Cmd {
	h.mu.Lock()
	screen := h.screens.peek()
	var top *shownPopup
	if screen != nil {
		top = screen.remove(topID(screen))
	}
	h.mu.Unlock()

	if top == nil {
		return nil
	}
	settle(top, result)
	log.Debug(log.CatUI, "popup closed", "screen", screen.id, "popup", top.id)
	return func() tea.Msg { return DismissedMsg{Screen: screen.id, Popup: top.id, Result: result} }
}

func topID(s *Screen) string {
	if top := s.top(); top != nil {
		return top.id
	}
	return ""
}

// Depth returns the popup count of the current screen.
func (h *Host) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if screen := h.screens.peek(); screen != nil {
		return screen.Depth()
	}
	return 0
}

// Top returns the view on top of the current screen, if any.
func (h *Host) Top() (popup.View, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	screen := h.screens.peek()
	if screen == nil {
		return nil, false
	}
	if top := screen.top(); top != nil {
		return top.view, true
	}
	return nil, false
}

func zoneID(p *shownPopup) string {
	return "popup-" + p.id
}
