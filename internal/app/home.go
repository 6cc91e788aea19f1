package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/poptart/internal/keys"
	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/presentation"
	"github.com/zjrosen/poptart/internal/ui/host"
	"github.com/zjrosen/poptart/internal/ui/popups"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

// HomeScreenID identifies the demo home screen.
const HomeScreenID = "home"

// Navigator pushes and pops screens. *host.Host implements it.
type Navigator interface {
	PushScreen(id string, model tea.Model) *host.Screen
	PopScreen() *host.Screen
}

// Result tags for popup.ResultMsg.
const (
	tagConfirm = "confirm"
	tagPrompt  = "prompt"
	tagNotice  = "notice"
	tagStacked = "stacked"
	tagLogs    = "logs"
)

// pendingMsg hands a freshly shown async popup back to the update loop.
type pendingMsg struct {
	tag     string
	pending *popup.Pending
}

// errMsg reports a synchronous show failure.
type errMsg struct {
	err error
}

// Home is the demo home screen. Every popup is requested by view-model type
// from a command, the way application code would.
type Home struct {
	svc      *popup.Service
	nav      Navigator
	registry *popup.Registry

	user    string
	last    string
	err     error
	pending map[string]*popup.Pending

	width  int
	height int
}

// NewHome returns the home screen.
func NewHome(svc *popup.Service, nav Navigator, registry *popup.Registry) Home {
	return Home{
		svc:      svc,
		nav:      nav,
		registry: registry,
		user:     "friend",
		pending:  make(map[string]*popup.Pending),
	}
}

// Init implements tea.Model.
func (m Home) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pendingMsg:
		m.pending[msg.tag] = msg.pending
		return m, popup.AwaitCmd(msg.pending, msg.tag)

	case popup.ResultMsg:
		delete(m.pending, msg.Tag)
		return m.handleResult(msg)

	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Home) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Demo.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Demo.Greeting):
		m.err = nil
		return m, m.showGreeting()

	case key.Matches(msg, keys.Demo.Confirm):
		m.err = nil
		return m, m.showAsync(tagConfirm, func(ctx context.Context) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*popups.ConfirmViewModel](ctx, m.svc, popup.Arguments{
				"title":         "Reset name",
				"message":       fmt.Sprintf("Forget %q and go back to the default name?", m.user),
				"confirm_label": "Reset",
				"danger":        true,
			})
		})

	case key.Matches(msg, keys.Demo.Prompt):
		m.err = nil
		return m, m.showAsync(tagPrompt, func(ctx context.Context) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*popups.PromptViewModel](ctx, m.svc, popup.Arguments{
				"title":       "Your name",
				"label":       "Who should the greeting address?",
				"placeholder": "name",
				"value":       m.user,
				"max_length":  32,
				"required":    true,
			})
		})

	case key.Matches(msg, keys.Demo.Notice):
		m.err = nil
		vm, err := popup.ResolveViewModel[*popups.NoticeViewModel](m.svc)
		if err != nil {
			m.err = err
			return m, nil
		}
		vm.SetArguments(popup.Arguments{"title": "Registered popups", "body": registryMarkdown(m.registry)})
		return m, m.showAsync(tagNotice, func(ctx context.Context) *popup.Pending {
			return popup.ShowViewModelAsync(ctx, m.svc, vm)
		})

	case key.Matches(msg, keys.Demo.Logs):
		m.err = nil
		return m, m.showAsync(tagLogs, func(ctx context.Context) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*popups.LogsViewModel](ctx, m.svc, popup.Arguments{"level": "debug"})
		})

	case key.Matches(msg, keys.Demo.Stacked):
		m.err = nil
		return m, tea.Sequence(m.showGreeting(), m.showAsync(tagStacked, func(ctx context.Context) *popup.Pending {
			return popup.ShowAsync[*popups.ConfirmViewModel](ctx, m.svc)
		}))

	case key.Matches(msg, keys.Demo.CancelAsync):
		for tag, p := range m.pending {
			log.Debug(log.CatUI, "cancelling pending popup", "tag", tag)
			p.Cancel()
		}
		return m, nil

	case key.Matches(msg, keys.Demo.Details):
		m.nav.PushScreen(DetailsScreenID, NewDetails(m.svc, m.nav, m.width, m.height))
		return m, nil
	}
	return m, nil
}

func (m Home) showGreeting() tea.Cmd {
	svc, name := m.svc, m.user
	return func() tea.Msg {
		if err := popup.ShowWithArguments[*popups.GreetingViewModel](svc, popup.Arguments{"name": name}); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m Home) showAsync(tag string, show func(ctx context.Context) *popup.Pending) tea.Cmd {
	return func() tea.Msg {
		return pendingMsg{tag: tag, pending: show(context.Background())}
	}
}

func (m Home) handleResult(msg popup.ResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		m.last = fmt.Sprintf("%s: %v", msg.Tag, msg.Err)
		return m, nil
	}

	switch msg.Tag {
	case tagPrompt:
		if name, ok := msg.Result.(string); ok && name != "" {
			m.user = name
		}
	case tagConfirm:
		if reset, ok := msg.Result.(bool); ok && reset {
			m.user = "friend"
		}
	}
	m.last = fmt.Sprintf("%s → %v", msg.Tag, msg.Result)
	return m, nil
}

// View implements tea.Model.
func (m Home) View() string {
	unlock := styles.RLock()
	title := styles.TitleStyle.Render("poptart")
	body := styles.BodyStyle.Render(fmt.Sprintf("Hello, %s.", m.user))
	var status string
	if m.err != nil {
		status = styles.ErrorStyle.Render(m.err.Error())
	} else if m.last != "" {
		status = styles.HintStyle.Render("last result: " + m.last)
	}
	unlock()

	lines := []string{title, "", body}
	if len(m.pending) > 0 {
		lines = append(lines, fmt.Sprintf("%d popup(s) awaiting a result", len(m.pending)))
	}
	if status != "" {
		lines = append(lines, "", status)
	}
	lines = append(lines, "", helpLine(keys.Demo.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	unlock := styles.RLock()
	defer unlock()
	return styles.HintStyle.Render(strings.Join(parts, " • "))
}

func registryMarkdown(reg *popup.Registry) string {
	var b strings.Builder
	b.WriteString("Each view-model type is paired with one popup view.\n\n")
	for _, dto := range presentation.FromRegistry(reg) {
		fmt.Fprintf(&b, "- **%s**: `%s` → `%s`\n", dto.Name, dto.ViewModel, dto.View)
	}
	return b.String()
}
