package popups

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/markdown"
)

// Options carries the configured look of the stock popups.
type Options struct {
	MinWidth      int
	MarkdownStyle string
	// Renders is shared by every notice. Nil gives each notice its own.
	Renders *markdown.Cache
}

// RegisterAll pairs every stock view-model with its popup.
func RegisterAll(reg *popup.Registry, services popup.ServiceCollection, opts Options) error {
	steps := []func() error{
		func() error {
			return popup.Register(reg, services, func() *Greeting {
				g := NewGreeting()
				g.SetMinWidth(opts.MinWidth)
				return g
			}, NewGreetingViewModel)
		},
		func() error {
			return popup.Register(reg, services, func() *Confirm {
				c := NewConfirm()
				c.SetMinWidth(opts.MinWidth)
				return c
			}, NewConfirmViewModel)
		},
		func() error {
			return popup.Register(reg, services, func() *Prompt {
				p := NewPrompt()
				p.SetMinWidth(opts.MinWidth)
				return p
			}, NewPromptViewModel)
		},
		func() error {
			return popup.Register(reg, services, func() *Notice {
				n := NewNotice(opts.MarkdownStyle, opts.Renders)
				n.SetMinWidth(opts.MinWidth)
				return n
			}, NewNoticeViewModel)
		},
		func() error {
			return popup.Register(reg, services, func() *Logs {
				l := NewLogs()
				l.SetMinWidth(opts.MinWidth)
				return l
			}, NewLogsViewModel)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("registering stock popups: %w", err)
		}
	}
	return nil
}

// Entry names a stock popup for the command line.
type Entry struct {
	Name        string
	ViewModel   reflect.Type
	Description string
	Arguments   []string
	Show        func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending
}

var catalog = map[string]Entry{
	"greeting": {
		Name:        "greeting",
		ViewModel:   reflect.TypeOf((*GreetingViewModel)(nil)),
		Description: "Says hello",
		Arguments:   []string{"name"},
		Show: func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*GreetingViewModel](ctx, svc, args)
		},
	},
	"confirm": {
		Name:        "confirm",
		ViewModel:   reflect.TypeOf((*ConfirmViewModel)(nil)),
		Description: "Yes/no question, closes with true or false",
		Arguments:   []string{"title", "message", "confirm_label", "danger"},
		Show: func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*ConfirmViewModel](ctx, svc, args)
		},
	},
	"prompt": {
		Name:        "prompt",
		ViewModel:   reflect.TypeOf((*PromptViewModel)(nil)),
		Description: "Single line text input, closes with the text",
		Arguments:   []string{"title", "label", "placeholder", "value", "max_length", "required"},
		Show: func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*PromptViewModel](ctx, svc, args)
		},
	},
	"notice": {
		Name:        "notice",
		ViewModel:   reflect.TypeOf((*NoticeViewModel)(nil)),
		Description: "Markdown message",
		Arguments:   []string{"title", "body"},
		Show: func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*NoticeViewModel](ctx, svc, args)
		},
	},
	"logs": {
		Name:        "logs",
		ViewModel:   reflect.TypeOf((*LogsViewModel)(nil)),
		Description: "Tails the debug log",
		Arguments:   []string{"level", "limit", "categories"},
		Show: func(ctx context.Context, svc *popup.Service, args popup.Arguments) *popup.Pending {
			return popup.ShowWithArgumentsAsync[*LogsViewModel](ctx, svc, args)
		},
	},
}

// Lookup finds a stock popup by name.
func Lookup(name string) (Entry, bool) {
	e, ok := catalog[name]
	return e, ok
}

// ByViewModel finds the stock popup showing view-model type t.
func ByViewModel(t reflect.Type) (Entry, bool) {
	for _, e := range catalog {
		if e.ViewModel == t {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the stock popup names in order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
