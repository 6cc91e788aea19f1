package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/poptart/internal/keys"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/popups"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

// DetailsScreenID identifies the pushed demo screen.
const DetailsScreenID = "details"

// Details is a second screen. Popups requested while it is on top are shown
// on it, not on the home screen underneath.
type Details struct {
	svc    *popup.Service
	nav    Navigator
	err    error
	width  int
	height int
}

// NewDetails returns the details screen sized like the screen it covers.
func NewDetails(svc *popup.Service, nav Navigator, width, height int) Details {
	return Details{svc: svc, nav: nav, width: width, height: height}
}

// Init implements tea.Model.
func (m Details) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Details) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case errMsg:
		m.err = msg.err
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Demo.Back):
			m.nav.PopScreen()
		case key.Matches(msg, keys.Demo.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Demo.Greeting):
			svc := m.svc
			return m, func() tea.Msg {
				if err := popup.ShowWithArguments[*popups.GreetingViewModel](svc, popup.Arguments{"name": "details screen"}); err != nil {
					return errMsg{err: err}
				}
				return nil
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Details) View() string {
	unlock := styles.RLock()
	title := styles.TitleStyle.Render("details")
	hints := styles.HintStyle.Render(fmt.Sprintf("%s • %s • %s",
		keys.Demo.Greeting.Help().Key+" "+keys.Demo.Greeting.Help().Desc,
		keys.Demo.Back.Help().Key+" "+keys.Demo.Back.Help().Desc,
		keys.Demo.Quit.Help().Key+" "+keys.Demo.Quit.Help().Desc,
	))
	var status string
	if m.err != nil {
		status = styles.ErrorStyle.Render(m.err.Error())
	}
	unlock()

	lines := []string{title, "", "A second screen pushed over home.", "", hints}
	if status != "" {
		lines = append(lines, "", status)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}
