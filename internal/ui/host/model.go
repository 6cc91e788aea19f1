package host

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/overlay"
)

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd {
	h.mu.Lock()
	screen := h.screens.peek()
	h.mu.Unlock()

	var cmds []tea.Cmd
	if screen != nil {
		cmds = append(cmds, screen.model.Init())
	}
	cmds = append(cmds, h.initPopups()...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Input goes to the top popup when one is
// shown and to the screen otherwise. ctrl+c always quits. Other messages
// reach the current screen and every initialized popup, so popups buried
// under others keep their subscriptions alive.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := h.initPopups()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.resize(msg.Width, msg.Height)
		cmds = append(cmds, h.updateScreen(msg))

	case popup.CloseMsg:
		if msg.Popup == "" {
			cmds = append(cmds, h.dismissTop(msg.Result))
			break
		}
		cmds = append(cmds, h.closePopup(msg.Popup, msg.Result))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return h, tea.Quit
		}
		if _, ok := h.Top(); !ok {
			cmds = append(cmds, h.updateScreen(msg))
			break
		}
		if msg.Type == tea.KeyEsc && h.config().DismissOnEscape {
			cmds = append(cmds, h.dismissTop(nil))
			break
		}
		cmds = append(cmds, h.updateTop(msg))

	case tea.MouseMsg:
		top := h.topEntry()
		if top == nil {
			cmds = append(cmds, h.updateScreen(msg))
			break
		}
		if h.config().LightDismiss && clickedOutside(top, msg) {
			cmds = append(cmds, h.dismissTop(nil))
			break
		}
		cmds = append(cmds, h.updateTop(msg))

	case ShownMsg, ReconfiguredMsg:
		// initPopups already ran

	case DismissedMsg:
		cmds = append(cmds, h.updateScreen(msg))

	default:
		cmds = append(cmds, h.updateScreen(msg))
		cmds = append(cmds, h.updatePopups(msg)...)
	}

	return h, tea.Batch(cmds...)
}

// View implements tea.Model. Popups are drawn bottom to top over the
// current screen.
func (h *Host) View() string {
	h.mu.Lock()
	screen := h.screens.peek()
	if screen == nil {
		h.mu.Unlock()
		return ""
	}
	model := screen.model
	views := make([]*shownPopup, len(screen.popups))
	copy(views, screen.popups)
	cfg := overlay.Config{Width: h.width, Height: h.height, Position: h.cfg.Position, PadY: h.cfg.PadY}
	h.mu.Unlock()

	frame := model.View()
	for _, p := range views {
		frame = overlay.Place(cfg, zone.Mark(zoneID(p), p.view.View()), frame)
	}
	return zone.Scan(frame)
}

// initPopups runs Init for popups pushed since the last update.
func (h *Host) initPopups() []tea.Cmd {
	h.mu.Lock()
	var fresh []*shownPopup
	if screen := h.screens.peek(); screen != nil {
		for _, p := range screen.popups {
			if !p.initialized {
				p.initialized = true
				fresh = append(fresh, p)
			}
		}
	}
	width, height := h.width, h.height
	h.mu.Unlock()

	var cmds []tea.Cmd
	for _, p := range fresh {
		if s, ok := p.view.(popup.Sizer); ok && width > 0 {
			s.SetSize(width, height)
		}
		cmds = append(cmds, stamp(p.id, p.view.Init()))
	}
	return cmds
}

func (h *Host) resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	var views []popup.View
	if screen := h.screens.peek(); screen != nil {
		for _, p := range screen.popups {
			views = append(views, p.view)
		}
	}
	h.mu.Unlock()

	for _, v := range views {
		if s, ok := v.(popup.Sizer); ok {
			s.SetSize(width, height)
		}
	}
}

func (h *Host) updateScreen(msg tea.Msg) tea.Cmd {
	h.mu.Lock()
	screen := h.screens.peek()
	h.mu.Unlock()
	if screen == nil {
		return nil
	}

	model, cmd := screen.model.Update(msg)
	h.mu.Lock()
	screen.model = model
	h.mu.Unlock()
	return cmd
}

func (h *Host) updateTop(msg tea.Msg) tea.Cmd {
	top := h.topEntry()
	if top == nil {
		return nil
	}

	return h.updatePopup(top, msg)
}

func (h *Host) updatePopups(msg tea.Msg) []tea.Cmd {
	h.mu.Lock()
	targets := h.screens.initialized()
	h.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(targets))
	for _, p := range targets {
		cmds = append(cmds, h.updatePopup(p, msg))
	}
	return cmds
}

func (h *Host) updatePopup(p *shownPopup, msg tea.Msg) tea.Cmd {
	model, cmd := p.view.Update(msg)
	if v, ok := model.(popup.View); ok {
		h.mu.Lock()
		p.view = v
		h.mu.Unlock()
	}
	return stamp(p.id, cmd)
}

// stamp tags CloseMsgs produced by cmd with the popup id that issued them.
// Batches are stamped recursively.
func stamp(id string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case popup.CloseMsg:
			if msg.Popup == "" {
				msg.Popup = id
			}
			return msg
		case tea.BatchMsg:
			stamped := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				stamped[i] = stamp(id, c)
			}
			return stamped
		default:
			return msg
		}
	}
}

func (h *Host) topEntry() *shownPopup {
	h.mu.Lock()
	defer h.mu.Unlock()
	if screen := h.screens.peek(); screen != nil {
		return screen.top()
	}
	return nil
}

func (h *Host) config() Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

func clickedOutside(p *shownPopup, msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return false
	}
	z := zone.Get(zoneID(p))
	if z == nil || z.IsZero() {
		return false
	}
	return !z.InBounds(msg)
}
