package popups

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/pubsub"
	"github.com/zjrosen/poptart/internal/ui/markdown"
)

// NoticeViewModel carries a markdown body. Arguments: "title" and "body".
// SetBody may be called while the notice is shown; the popup re-renders.
type NoticeViewModel struct {
	popup.Observable

	mu    sync.RWMutex
	title string
	body  string
}

// NewNoticeViewModel returns an empty notice.
func NewNoticeViewModel() *NoticeViewModel {
	return &NoticeViewModel{title: "Notice"}
}

// SetArguments implements popup.ArgumentsReceiver.
func (vm *NoticeViewModel) SetArguments(args popup.Arguments) {
	vm.mu.Lock()
	if v := args.String("title"); v != "" {
		vm.title = v
	}
	vm.mu.Unlock()
	vm.SetBody(args.String("body"))
}

// Title returns the notice title.
func (vm *NoticeViewModel) Title() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.title
}

// Body returns the markdown source.
func (vm *NoticeViewModel) Body() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.body
}

// SetBody replaces the markdown source and notifies subscribers.
func (vm *NoticeViewModel) SetBody(body string) {
	vm.mu.Lock()
	vm.body = body
	vm.mu.Unlock()
	vm.NotifyChanged("Body", body)
}

// Notice renders a NoticeViewModel's body as markdown. Enter or q closes it.
type Notice struct {
	popup.Base
	style    string
	minWidth int

	renders  *markdown.Cache
	rendered string
	source   string

	cancel   context.CancelFunc
	listener *pubsub.Listener[popup.PropertyChange]
}

// NewNotice returns an unbound notice rendering with a glamour style name
// through renders. A nil cache gets a private one.
func NewNotice(style string, renders *markdown.Cache) *Notice {
	if renders == nil {
		renders = markdown.NewCache(markdown.DefaultCacheTTL)
	}
	return &Notice{style: style, renders: renders}
}

func (n *Notice) viewModel() *NoticeViewModel {
	if vm, ok := n.BindingContext().(*NoticeViewModel); ok {
		return vm
	}
	vm := NewNoticeViewModel()
	n.SetBindingContext(vm)
	return vm
}

// Init implements tea.Model. It starts listening for body changes.
func (n *Notice) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.listener = pubsub.NewListener[popup.PropertyChange](ctx, n.viewModel())
	n.render()
	return n.listen()
}

// bodyChanged is a view-model change addressed to one notice. The host
// hands every notice each message, so events carry their owner.
type bodyChanged struct {
	owner  *Notice
	change popup.PropertyChange
}

func (n *Notice) listen() tea.Cmd {
	next := n.listener.Listen()
	return func() tea.Msg {
		ev, ok := next().(pubsub.Event[popup.PropertyChange])
		if !ok {
			return nil
		}
		return bodyChanged{owner: n, change: ev.Payload}
	}
}

// Dismissed implements popup.Dismisser.
func (n *Notice) Dismissed() {
	if n.cancel != nil {
		n.cancel()
	}
}

// Update implements tea.Model.
func (n *Notice) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bodyChanged:
		if msg.owner != n {
			return n, nil
		}
		if msg.change.Name == "Body" {
			n.render()
		}
		return n, n.listen()
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q":
			return n, popup.Close(nil)
		}
	}
	return n, nil
}

func (n *Notice) render() {
	width := max(n.minWidth, DefaultMinWidth)
	n.source = n.viewModel().Body()
	out, err := n.renders.Render(context.Background(), width, n.style, n.source)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render", err, "style", n.style)
		n.rendered = wrap(n.source, width)
		return
	}
	n.rendered = out
}

// View implements tea.Model.
func (n *Notice) View() string {
	vm := n.viewModel()
	if n.source != vm.Body() || (n.rendered == "" && n.source != "") {
		n.render()
	}
	return frame(vm.Title(), n.rendered+"\n\n"+hint("enter to close"), n.minWidth)
}

// SetMinWidth sets the content width floor.
func (n *Notice) SetMinWidth(w int) {
	n.minWidth = w
}
