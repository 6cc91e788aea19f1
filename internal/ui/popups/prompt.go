package popups

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

// PromptViewModel asks for one line of text. Arguments: "title", "label",
// "placeholder", "value", "max_length" and "required".
type PromptViewModel struct {
	popup.Observable
	Title       string
	Label       string
	Placeholder string
	MaxLength   int
	Required    bool

	value string
}

// NewPromptViewModel returns an optional, untitled text prompt.
func NewPromptViewModel() *PromptViewModel {
	return &PromptViewModel{Title: "Input"}
}

// SetArguments implements popup.ArgumentsReceiver.
func (vm *PromptViewModel) SetArguments(args popup.Arguments) {
	if v := args.String("title"); v != "" {
		vm.Title = v
	}
	vm.Label = args.String("label")
	vm.Placeholder = args.String("placeholder")
	vm.Required = args.Bool("required")
	if n, err := args.Int("max_length"); err == nil && n > 0 {
		vm.MaxLength = n
	}
	vm.SetValue(args.String("value"))
}

// Value returns the text entered so far.
func (vm *PromptViewModel) Value() string {
	return vm.value
}

// SetValue replaces the text and notifies subscribers.
func (vm *PromptViewModel) SetValue(v string) {
	if v == vm.value {
		return
	}
	vm.value = v
	vm.NotifyChanged("Value", v)
}

// Prompt renders a PromptViewModel. Enter closes it with the entered string
// unless the prompt is required and empty.
type Prompt struct {
	popup.Base
	input    textinput.Model
	minWidth int
	invalid  bool
}

// NewPrompt returns an unbound prompt popup.
func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = DefaultMinWidth - 4
	return &Prompt{input: ti}
}

func (p *Prompt) viewModel() *PromptViewModel {
	if vm, ok := p.BindingContext().(*PromptViewModel); ok {
		return vm
	}
	vm := NewPromptViewModel()
	p.SetBindingContext(vm)
	return vm
}

// Init implements tea.Model. The input is seeded from the bound view-model.
func (p *Prompt) Init() tea.Cmd {
	vm := p.viewModel()
	p.input.Placeholder = vm.Placeholder
	if vm.MaxLength > 0 {
		p.input.CharLimit = vm.MaxLength
	}
	p.input.SetValue(vm.Value())
	p.input.Focus()
	return textinput.Blink
}

// Update implements tea.Model.
func (p *Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	vm := p.viewModel()
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		if vm.Required && vm.Value() == "" {
			p.invalid = true
			return p, nil
		}
		return p, popup.Close(vm.Value())
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	vm.SetValue(p.input.Value())
	if vm.Value() != "" {
		p.invalid = false
	}
	return p, cmd
}

// View implements tea.Model.
func (p *Prompt) View() string {
	vm := p.viewModel()

	body := ""
	if vm.Label != "" {
		body = wrap(vm.Label, p.minWidth) + "\n\n"
	}
	body += p.input.View()
	if vm.MaxLength > 0 {
		body += "\n" + hint(fmt.Sprintf("%d/%d", uniseg.GraphemeClusterCount(vm.Value()), vm.MaxLength))
	}
	if p.invalid {
		unlock := styles.RLock()
		body += "\n" + styles.ErrorStyle.Render("a value is required")
		unlock()
	}
	body += "\n\n" + hint("enter to submit, esc to cancel")
	return frame(vm.Title, body, p.minWidth)
}

// SetMinWidth sets the content width floor and sizes the input to match.
func (p *Prompt) SetMinWidth(w int) {
	p.minWidth = w
	p.input.Width = max(w, DefaultMinWidth) - 4
}
