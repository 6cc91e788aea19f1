package popup

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a popup component. It is a Bubble Tea model that owns at most one
// bound view-model, its binding context.
type View interface {
	tea.Model
	BindingContext() ViewModel
	SetBindingContext(vm ViewModel)
}

// Sizer is implemented by views that want the viewport size.
type Sizer interface {
	SetSize(width, height int)
}

// Dismisser is implemented by views that release resources when they
// leave the screen, however they were dismissed.
type Dismisser interface {
	Dismissed()
}

// Base implements the binding-context half of View. Embed it in popups.
type Base struct {
	bindingContext ViewModel
}

// BindingContext returns the bound view-model, nil when unbound.
func (b *Base) BindingContext() ViewModel {
	return b.bindingContext
}

// SetBindingContext binds vm to the view.
func (b *Base) SetBindingContext(vm ViewModel) {
	b.bindingContext = vm
}

// CloseMsg asks the host to dismiss a popup with Result. The host fills in
// Popup with the id of the popup whose command produced the message; an
// empty Popup means the topmost popup. A CloseMsg for a popup that is
// already gone is dropped.
type CloseMsg struct {
	Popup  string
	Result any
}

// Close returns a command that dismisses the popup emitting it.
func Close(result any) tea.Cmd {
	return func() tea.Msg { return CloseMsg{Result: result} }
}

// ResultMsg delivers the outcome of an async show back into a Bubble Tea
// update loop. See AwaitCmd.
type ResultMsg struct {
	Tag    string
	Result any
	Err    error
}

// AwaitCmd waits for p and reports its outcome as a ResultMsg tagged tag.
func AwaitCmd(p *Pending, tag string) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		result, err := p.Result()
		return ResultMsg{Tag: tag, Result: result, Err: err}
	}
}
