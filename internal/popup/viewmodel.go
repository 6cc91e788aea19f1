package popup

import (
	"context"
	"sync"

	"github.com/spf13/cast"

	"github.com/zjrosen/poptart/internal/pubsub"
)

// PropertyChange names the property that changed and its new value.
type PropertyChange struct {
	Name  string
	Value any
}

// ViewModel is the observable-change capability every popup view-model has.
// Views subscribe to redraw when the view-model mutates.
type ViewModel interface {
	Subscribe(ctx context.Context) <-chan pubsub.Event[PropertyChange]
}

// ArgumentsReceiver is implemented by view-models that accept caller data.
// SetArguments is called exactly once per show-request, before the popup
// is visible.
type ArgumentsReceiver interface {
	SetArguments(args Arguments)
}

// ArgumentsViewModel is the constraint for the argument-taking show operations.
type ArgumentsViewModel interface {
	ViewModel
	ArgumentsReceiver
}

// Observable implements ViewModel. Embed it by value; the zero value is ready.
type Observable struct {
	once   sync.Once
	broker *pubsub.Broker[PropertyChange]
}

func (o *Observable) init() {
	o.once.Do(func() { o.broker = pubsub.NewBroker[PropertyChange]() })
}

// Subscribe implements ViewModel.
func (o *Observable) Subscribe(ctx context.Context) <-chan pubsub.Event[PropertyChange] {
	o.init()
	return o.broker.Subscribe(ctx)
}

// NotifyChanged publishes a change of property name.
func (o *Observable) NotifyChanged(name string, value any) {
	o.init()
	o.broker.Publish(pubsub.ChangedEvent, PropertyChange{Name: name, Value: value})
}

// Arguments are the caller-owned key/value data handed to a view-model.
// The popup package only reads them; receivers must not mutate the map.
type Arguments map[string]any

// Has reports whether key is present.
func (a Arguments) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns key coerced to a string, or "" when absent or not coercible.
func (a Arguments) String(key string) string {
	return cast.ToString(a[key])
}

// Int returns key coerced to an int.
func (a Arguments) Int(key string) (int, error) {
	return cast.ToIntE(a[key])
}

// Bool returns key coerced to a bool, false when absent.
func (a Arguments) Bool(key string) bool {
	return cast.ToBool(a[key])
}

// StringSlice returns key coerced to a []string.
func (a Arguments) StringSlice(key string) []string {
	return cast.ToStringSlice(a[key])
}
