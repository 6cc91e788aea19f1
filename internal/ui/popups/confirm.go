package popups

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/popup"
)

// ConfirmViewModel asks a yes/no question. Arguments: "title", "message",
// "confirm_label" and "danger".
type ConfirmViewModel struct {
	popup.Observable
	Title        string
	Message      string
	ConfirmLabel string
	Danger       bool
}

// NewConfirmViewModel returns a generic "Are you sure?" confirmation.
func NewConfirmViewModel() *ConfirmViewModel {
	return &ConfirmViewModel{Title: "Confirm", Message: "Are you sure?", ConfirmLabel: "Confirm"}
}

// SetArguments implements popup.ArgumentsReceiver.
func (vm *ConfirmViewModel) SetArguments(args popup.Arguments) {
	if v := args.String("title"); v != "" {
		vm.Title = v
	}
	if v := args.String("message"); v != "" {
		vm.Message = v
	}
	if v := args.String("confirm_label"); v != "" {
		vm.ConfirmLabel = v
	}
	vm.Danger = args.Bool("danger")
	vm.NotifyChanged("Arguments", args)
}

type confirmField int

const (
	fieldConfirm confirmField = iota
	fieldCancel
)

// Confirm renders a ConfirmViewModel. It closes with true or false.
type Confirm struct {
	popup.Base
	focused  confirmField
	minWidth int
}

// NewConfirm returns an unbound confirm popup focused on the confirm button.
func NewConfirm() *Confirm {
	return &Confirm{}
}

func (c *Confirm) viewModel() *ConfirmViewModel {
	if vm, ok := c.BindingContext().(*ConfirmViewModel); ok {
		return vm
	}
	return NewConfirmViewModel()
}

// Init implements tea.Model.
func (c *Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c *Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch k.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if c.focused == fieldConfirm {
			c.focused = fieldCancel
		} else {
			c.focused = fieldConfirm
		}
	case "y":
		return c, popup.Close(true)
	case "n":
		return c, popup.Close(false)
	case "enter":
		return c, popup.Close(c.focused == fieldConfirm)
	}
	return c, nil
}

// View implements tea.Model.
func (c *Confirm) View() string {
	vm := c.viewModel()

	kind := buttonPrimary
	if vm.Danger {
		kind = buttonDanger
	}
	buttons := button(vm.ConfirmLabel, kind, c.focused == fieldConfirm) + "  " +
		button("Cancel", buttonSecondary, c.focused == fieldCancel)

	body := wrap(vm.Message, c.minWidth) + "\n\n" + buttons
	return frame(vm.Title, body, c.minWidth)
}

// SetMinWidth sets the content width floor.
func (c *Confirm) SetMinWidth(w int) {
	c.minWidth = w
}
