// Package app wires the popup registry, host and service together and runs
// the demo application.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/poptart/internal/config"
	"github.com/zjrosen/poptart/internal/container"
	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/tracing"
	"github.com/zjrosen/poptart/internal/ui/host"
	"github.com/zjrosen/poptart/internal/ui/markdown"
	"github.com/zjrosen/poptart/internal/ui/popups"
)

// ErrUnknownPopup is returned by RunOne for a name with no stock popup.
var ErrUnknownPopup = errors.New("unknown popup")

// App owns the long-lived collaborators of a poptart session.
type App struct {
	cfg      config.Config
	services *container.Container
	registry *popup.Registry
	host     *host.Host
	popups   *popup.Service
	tracing  *tracing.Provider
	renders  *markdown.Cache
}

// New registers the stock popups, seals the registry and builds the service.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Theme.ApplyTheme(); err != nil {
		return nil, fmt.Errorf("applying theme: %w", err)
	}

	services := container.New()
	registry := popup.NewRegistry()
	renders := markdown.NewCache(markdown.DefaultCacheTTL)
	opts := cfg.PopupOptions()
	opts.Renders = renders
	if err := popups.RegisterAll(registry, services, opts); err != nil {
		return nil, err
	}
	registry.Seal()

	tp, err := tracing.NewProvider(cfg.TracingConfig())
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}

	h := host.New(cfg.HostConfig())
	svc := popup.NewService(registry, services, h, h, popup.WithTracer(tp.Tracer()))

	log.Info(log.CatUI, "app ready", "popups", registry.Len(), "tracing", tp.Enabled())
	return &App{
		cfg:      cfg,
		services: services,
		registry: registry,
		host:     h,
		popups:   svc,
		tracing:  tp,
		renders:  renders,
	}, nil
}

// Registry returns the sealed popup registry.
func (a *App) Registry() *popup.Registry {
	return a.registry
}

// Service returns the popup service.
func (a *App) Service() *popup.Service {
	return a.popups
}

// Host returns the Bubble Tea host model.
func (a *App) Host() *host.Host {
	return a.host
}

// Reload applies a changed config to the running app. Registered popups
// keep the options they were built with; cached markdown is re-rendered.
func (a *App) Reload(cfg config.Config) error {
	if err := cfg.Theme.ApplyTheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	if err := a.renders.Flush(context.Background()); err != nil {
		return fmt.Errorf("flushing render cache: %w", err)
	}
	a.host.SetConfig(cfg.HostConfig())
	a.cfg = cfg
	log.Info(log.CatConfig, "config reloaded")
	return nil
}

// Run shows the demo home screen until the user quits.
func (a *App) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	a.host.PushScreen(HomeScreenID, NewHome(a.popups, a.host, a.registry))

	p := tea.NewProgram(a.host, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	a.host.SetProgram(p)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// RunOne shows the stock popup called name over an empty screen and returns
// the value it was dismissed with.
func (a *App) RunOne(ctx context.Context, name string, args popup.Arguments, opts ...tea.ProgramOption) (any, error) {
	entry, ok := popups.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPopup, name, popups.Names())
	}

	a.host.PushScreen("show", blank{})
	p := tea.NewProgram(a.host, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	a.host.SetProgram(p)

	shown := make(chan *popup.Pending, 1)
	go func() {
		pending := entry.Show(ctx, a.popups, args)
		shown <- pending
		<-pending.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, err
	}
	pending := <-shown
	if !pending.Settled() {
		pending.Cancel()
	}
	return pending.Result()
}

// Shutdown flushes traces.
func (a *App) Shutdown(ctx context.Context) error {
	return a.tracing.Shutdown(ctx)
}

// blank is the screen under a popup shown from the command line.
type blank struct{}

func (blank) Init() tea.Cmd                       { return nil }
func (blank) Update(tea.Msg) (tea.Model, tea.Cmd) { return blank{}, nil }
func (blank) View() string                        { return "" }
