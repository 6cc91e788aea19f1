package popup

import (
	"context"
	"reflect"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/poptart/internal/container"
)

// === Test view-models ===

type greetingViewModel struct {
	Observable
	Name      string
	args      Arguments
	argsCalls int
}

func (vm *greetingViewModel) SetArguments(args Arguments) {
	vm.argsCalls++
	vm.args = args
	vm.Name = args.String("name")
	vm.NotifyChanged("Name", vm.Name)
}

type settingsViewModel struct {
	Observable
	argsCalls int
}

func (vm *settingsViewModel) SetArguments(Arguments) { vm.argsCalls++ }

type unregisteredViewModel struct {
	Observable
	id int
}

func (vm *unregisteredViewModel) SetArguments(Arguments) {}

// === Test views ===

type greetingPopup struct {
	Base
	width int
}

func (p *greetingPopup) Init() tea.Cmd                       { return nil }
func (p *greetingPopup) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }
func (p *greetingPopup) View() string                        { return "hello" }

type settingsPopup struct {
	Base
	width int
}

func (p *settingsPopup) Init() tea.Cmd                       { return nil }
func (p *settingsPopup) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }
func (p *settingsPopup) View() string                        { return "settings" }

// notAView is registered under a view type key by a misbehaving provider.
type notAView struct{ n int }

// === Collaborator doubles ===

// mockProvider wraps a real container and records every lookup.
type mockProvider struct {
	mock.Mock
	inner *container.Container
}

func newMockProvider() *mockProvider {
	return &mockProvider{inner: container.New()}
}

func (m *mockProvider) AddTransient(t reflect.Type, f func() any) error {
	return m.inner.AddTransient(t, f)
}

func (m *mockProvider) GetService(t reflect.Type) (any, bool) {
	m.Called(t)
	return m.inner.GetService(t)
}

type shown struct {
	screen Screen
	view   View
	async  bool
}

// fakePresenter records hand-offs. Async shows return pendings the test
// settles through resolve.
type fakePresenter struct {
	mu       sync.Mutex
	shown    []shown
	pendings []*Pending
	showErr  error
}

func (f *fakePresenter) Show(screen Screen, view View) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.showErr != nil {
		return f.showErr
	}
	f.shown = append(f.shown, shown{screen: screen, view: view})
	return nil
}

func (f *fakePresenter) ShowAsync(_ context.Context, screen Screen, view View) *Pending {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := NewPending()
	f.shown = append(f.shown, shown{screen: screen, view: view, async: true})
	f.pendings = append(f.pendings, p)
	return p
}

func (f *fakePresenter) calls() []shown {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shown(nil), f.shown...)
}

type fakeScreen string

func (s fakeScreen) ID() string { return string(s) }

type fakeScreens struct {
	mu      sync.Mutex
	current Screen
	err     error
	calls   int
}

func (f *fakeScreens) CurrentScreen() (Screen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.current, f.err
}

func (f *fakeScreens) set(s Screen) {
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
}

// === Fixture ===

type fixture struct {
	registry  *Registry
	provider  *mockProvider
	presenter *fakePresenter
	screens   *fakeScreens
	service   *Service
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		registry:  NewRegistry(),
		provider:  newMockProvider(),
		presenter: &fakePresenter{},
		screens:   &fakeScreens{current: fakeScreen("main")},
	}
	f.provider.On("GetService", mock.Anything).Maybe()
	f.service = NewService(f.registry, f.provider, f.presenter, f.screens, opts...)
	return f
}

func (f *fixture) registerDefaults() {
	must(Register[*greetingViewModel, *greetingPopup](f.registry, f.provider, nil, nil))
	must(Register[*settingsViewModel, *settingsPopup](f.registry, f.provider,
		func() *settingsPopup { return &settingsPopup{} },
		func() *settingsViewModel { return &settingsViewModel{} },
	))
	f.registry.Seal()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
