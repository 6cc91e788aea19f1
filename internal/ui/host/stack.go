package host

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/popup"
)

// Screen is one entry of the host's screen stack. It is the popup.Screen the
// service hands popups to.
type Screen struct {
	id     string
	model  tea.Model
	popups []*shownPopup
}

// ID implements popup.Screen.
func (s *Screen) ID() string {
	return s.id
}

// Depth returns how many popups are stacked on s.
func (s *Screen) Depth() int {
	return len(s.popups)
}

func (s *Screen) top() *shownPopup {
	if len(s.popups) == 0 {
		return nil
	}
	return s.popups[len(s.popups)-1]
}

func (s *Screen) remove(id string) *shownPopup {
	for i, p := range s.popups {
		if p.id == id {
			s.popups = append(s.popups[:i], s.popups[i+1:]...)
			return p
		}
	}
	return nil
}

// shownPopup is a view on a screen's popup stack.
type shownPopup struct {
	id          string
	view        popup.View
	pending     *popup.Pending
	initialized bool
}

// stack holds screens, topmost last.
type stack struct {
	entries []*Screen
}

func (s *stack) push(screen *Screen) {
	s.entries = append(s.entries, screen)
}

func (s *stack) pop() *Screen {
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

func (s *stack) peek() *Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

func (s *stack) find(id string) *Screen {
	for _, e := range s.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

// locate finds the screen holding popup id.
func (s *stack) locate(id string) *Screen {
	for _, e := range s.entries {
		for _, p := range e.popups {
			if p.id == id {
				return e
			}
		}
	}
	return nil
}

// initialized returns every popup whose Init has run, bottom screen first.
func (s *stack) initialized() []*shownPopup {
	var out []*shownPopup
	for _, e := range s.entries {
		for _, p := range e.popups {
			if p.initialized {
				out = append(out, p)
			}
		}
	}
	return out
}

func (s *stack) len() int {
	return len(s.entries)
}
