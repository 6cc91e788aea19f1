// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// DemoKeys are the home screen bindings of the demo application.
type DemoKeys struct {
	Greeting    key.Binding
	Confirm     key.Binding
	Prompt      key.Binding
	Notice      key.Binding
	Logs        key.Binding
	Stacked     key.Binding
	Details     key.Binding
	Back        key.Binding
	CancelAsync key.Binding
	Quit        key.Binding
}

// Demo holds the demo application keybindings.
var Demo = DemoKeys{
	Greeting: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "greeting"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "confirm"),
	),
	Prompt: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prompt"),
	),
	Notice: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notice"),
	),
	Logs: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "logs"),
	),
	Stacked: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stacked popups"),
	),
	Details: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "push screen"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "backspace"),
		key.WithHelp("b", "pop screen"),
	),
	CancelAsync: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel pending"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k DemoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Greeting, k.Confirm, k.Prompt, k.Notice, k.Logs, k.Stacked, k.Details, k.Back, k.CancelAsync, k.Quit}
}
