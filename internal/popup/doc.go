// Package popup shows modal overlays by naming a view-model type.
//
// Application code never constructs popup views. At start-up each
// view-model type is paired with the view that renders it:
//
//	reg := popup.NewRegistry()
//	err := popup.Register[*GreetingViewModel, *GreetingPopup](reg, c, NewGreetingPopup, NewGreetingViewModel)
//	reg.Seal()
//
// and later any code holding the Service asks for the view-model:
//
//	err := popup.ShowWithArguments[*GreetingViewModel](svc, popup.Arguments{"name": "Ada"})
//	pending := popup.ShowAsync[*ConfirmViewModel](ctx, svc)
//	result, err := pending.Await(ctx)
//
// # Request pipeline
//
// Every show-request runs resolve → bind → hand-off, in that order:
//
//   - the Registry maps the view-model type to its view type;
//   - the ServiceProvider builds a fresh (transient) view;
//   - for argument-taking requests, the binder makes sure the view's binding
//     context holds a view-model of the requested type, creating one when
//     the slot is empty, and calls SetArguments exactly once;
//   - the current screen is looked up and the view is handed to the Presenter.
//
// # Errors
//
// Synchronous entry points return errors directly. Asynchronous entry
// points never fail at the call site; the returned Pending is settled with
// the error instead, so callers handle every outcome in one place. All
// errors are configuration or programming errors and are never retried.
package popup
