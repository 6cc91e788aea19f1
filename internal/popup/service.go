package popup

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/tracing"
)

// Screen is the surface popups are shown on.
type Screen interface {
	ID() string
}

// ScreenLocator finds the screen that is active right now.
type ScreenLocator interface {
	CurrentScreen() (Screen, error)
}

// Presenter puts a view on screen.
type Presenter interface {
	// Show presents view and returns without waiting for dismissal. It
	// fails when screen can no longer host the view.
	Show(screen Screen, view View) error
	// ShowAsync presents view and returns a Pending that settles when the
	// view is dismissed. A done ctx dismisses the view.
	ShowAsync(ctx context.Context, screen Screen, view View) *Pending
}

// Service is the entry point for showing popups by view-model type.
type Service struct {
	registry  *Registry
	services  ServiceProvider
	presenter Presenter
	screens   ScreenLocator
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTracer records a span per show-request on t.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewService wires the registry to its collaborators.
func NewService(registry *Registry, services ServiceProvider, presenter Presenter, screens ScreenLocator, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		services:  services,
		presenter: presenter,
		screens:   screens,
		tracer:    noop.NewTracerProvider().Tracer("popup"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry the service resolves against.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Show resolves a fresh VM and shows its popup.
func Show[VM ViewModel](s *Service) error {
	_, err := show[VM](context.Background(), s, false)
	return err
}

// ShowViewModel shows the popup paired with VM, bound to vm.
func ShowViewModel[VM ViewModel](s *Service, vm VM) error {
	r := s.begin(context.Background(), "show_view_model", typeOf[VM](), false)
	_, err := showViewModel(r, vm)
	return err
}

// ShowWithArguments shows the popup paired with VM and hands args to its
// view-model before the popup becomes visible.
func ShowWithArguments[VM ArgumentsViewModel](s *Service, args Arguments) error {
	r := s.begin(context.Background(), "show_arguments", typeOf[VM](), false)
	_, err := showWithArguments[VM](r, args)
	return err
}

// ShowAsync is the asynchronous Show. Errors settle the returned Pending.
func ShowAsync[VM ViewModel](ctx context.Context, s *Service) *Pending {
	return settleAsync(show[VM](ctx, s, true))
}

// ShowViewModelAsync is the asynchronous ShowViewModel. Errors settle the
// returned Pending.
func ShowViewModelAsync[VM ViewModel](ctx context.Context, s *Service, vm VM) *Pending {
	r := s.begin(ctx, "show_view_model", typeOf[VM](), true)
	return settleAsync(showViewModel(r, vm))
}

// ShowWithArgumentsAsync is the asynchronous ShowWithArguments. Errors
// settle the returned Pending.
func ShowWithArgumentsAsync[VM ArgumentsViewModel](ctx context.Context, s *Service, args Arguments) *Pending {
	r := s.begin(ctx, "show_arguments", typeOf[VM](), true)
	return settleAsync(showWithArguments[VM](r, args))
}

func show[VM ViewModel](ctx context.Context, s *Service, async bool) (*Pending, error) {
	r := s.begin(ctx, "show", typeOf[VM](), async)
	vm, err := ResolveViewModel[VM](s)
	if err != nil {
		return nil, r.fail(err)
	}
	return showViewModel(r, vm)
}

func showViewModel[VM ViewModel](r *request, vm VM) (*Pending, error) {
	if isNil(vm) {
		return nil, r.fail(nullArgument("viewModel"))
	}
	view, err := r.resolveView()
	if err != nil {
		return nil, err
	}
	if err := attachViewModel(view, vm); err != nil {
		return nil, r.fail(err)
	}
	return r.handOff(view)
}

func showWithArguments[VM ArgumentsViewModel](r *request, args Arguments) (*Pending, error) {
	if args == nil {
		return nil, r.fail(nullArgument("arguments"))
	}
	view, err := r.resolveView()
	if err != nil {
		return nil, err
	}
	if err := bindArguments[VM](r.s, view, args); err != nil {
		return nil, r.fail(err)
	}
	r.span.AddEvent(tracing.EventArgumentsBound, trace.WithAttributes(attribute.Int(tracing.AttrArgCount, len(args))))
	return r.handOff(view)
}

func settleAsync(p *Pending, err error) *Pending {
	if err != nil {
		return Failed(err)
	}
	if p == nil {
		p = NewPending()
		p.Resolve(nil)
	}
	return p
}

// request carries one show-request through the pipeline.
type request struct {
	s      *Service
	ctx    context.Context
	span   trace.Span
	id     string
	op     string
	vmType reflect.Type
	async  bool
}

func (s *Service) begin(ctx context.Context, op string, vmType reflect.Type, async bool) *request {
	id := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, tracing.SpanShow, trace.WithAttributes(
		attribute.String(tracing.AttrRequestID, id),
		attribute.String(tracing.AttrOperation, op),
		attribute.String(tracing.AttrViewModel, vmType.String()),
		attribute.Bool(tracing.AttrAsync, async),
	))
	log.Debug(log.CatPopup, "show requested", "request", id, "op", op, "view_model", vmType, "async", async)
	return &request{s: s, ctx: ctx, span: span, id: id, op: op, vmType: vmType, async: async}
}

func (r *request) resolveView() (View, error) {
	view, err := r.s.ResolveView(r.vmType)
	if err != nil {
		return nil, r.fail(err)
	}
	r.span.AddEvent(tracing.EventViewResolved)
	r.span.SetAttributes(attribute.String(tracing.AttrView, reflect.TypeOf(view).String()))
	return view, nil
}

func (r *request) handOff(view View) (*Pending, error) {
	screen, err := r.s.screens.CurrentScreen()
	switch {
	case err != nil && !errors.Is(err, ErrNoActiveScreen):
		return nil, r.fail(fmt.Errorf("%w: %w", ErrNoActiveScreen, err))
	case err != nil:
		return nil, r.fail(err)
	case screen == nil || isNil(screen):
		return nil, r.fail(ErrNoActiveScreen)
	}
	r.span.SetAttributes(attribute.String(tracing.AttrScreen, screen.ID()))

	var p *Pending
	if r.async {
		p = r.s.presenter.ShowAsync(r.ctx, screen, view)
	} else if err := r.s.presenter.Show(screen, view); err != nil {
		return nil, r.fail(err)
	}

	r.span.AddEvent(tracing.EventHandedOff)
	r.span.SetStatus(codes.Ok, "")
	r.span.End()
	log.Debug(log.CatPopup, "popup handed off", "request", r.id, "view", reflect.TypeOf(view), "screen", screen.ID())
	return p, nil
}

func (r *request) fail(err error) error {
	r.span.RecordError(err)
	r.span.SetAttributes(attribute.String(tracing.AttrErrorType, errorKind(err)))
	r.span.SetStatus(codes.Error, err.Error())
	r.span.End()
	log.ErrorErr(log.CatPopup, "show failed", err, "request", r.id, "op", r.op, "view_model", r.vmType)
	return err
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrNullArgument):
		return "null_argument"
	case errors.Is(err, ErrUnregisteredViewModel):
		return "unregistered_view_model"
	case errors.Is(err, ErrResolutionFailure):
		return "resolution_failure"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrNoActiveScreen):
		return "no_active_screen"
	default:
		return "unknown"
	}
}
