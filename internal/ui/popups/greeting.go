package popups

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/popup"
)

// GreetingViewModel greets the "name" argument.
type GreetingViewModel struct {
	popup.Observable
	name string
}

// NewGreetingViewModel returns a view-model greeting nobody in particular.
func NewGreetingViewModel() *GreetingViewModel {
	return &GreetingViewModel{name: "there"}
}

// SetArguments implements popup.ArgumentsReceiver.
func (vm *GreetingViewModel) SetArguments(args popup.Arguments) {
	if name := args.String("name"); name != "" {
		vm.name = name
		vm.NotifyChanged("Name", name)
	}
}

// Name returns who is greeted.
func (vm *GreetingViewModel) Name() string {
	return vm.name
}

// Greeting renders a GreetingViewModel. Any of enter, space or q closes it.
type Greeting struct {
	popup.Base
	minWidth int
}

// NewGreeting returns an unbound greeting popup.
func NewGreeting() *Greeting {
	return &Greeting{}
}

func (g *Greeting) viewModel() *GreetingViewModel {
	vm, _ := g.BindingContext().(*GreetingViewModel)
	return vm
}

// Init implements tea.Model.
func (g *Greeting) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (g *Greeting) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", " ", "q":
			return g, popup.Close(nil)
		}
	}
	return g, nil
}

// View implements tea.Model.
func (g *Greeting) View() string {
	name := "there"
	if vm := g.viewModel(); vm != nil {
		name = vm.Name()
	}
	body := wrap(fmt.Sprintf("Hello, %s!", name), g.minWidth) + "\n\n" + hint("enter to close")
	return frame("Greeting", body, g.minWidth)
}

// SetMinWidth sets the content width floor.
func (g *Greeting) SetMinWidth(w int) {
	g.minWidth = w
}
