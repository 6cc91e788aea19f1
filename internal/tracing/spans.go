package tracing

// Span names.
const (
	SpanShow    = "popup.show"
	SpanDismiss = "popup.dismiss"
)

// Span attribute keys.
const (
	AttrRequestID = "popup.request_id"
	AttrOperation = "popup.operation"
	AttrViewModel = "popup.view_model"
	AttrView      = "popup.view"
	AttrAsync     = "popup.async"
	AttrScreen    = "popup.screen"
	AttrArgCount  = "popup.argument_count"
	AttrErrorType = "error.type"
)

// Span events.
const (
	EventViewResolved   = "view.resolved"
	EventArgumentsBound = "arguments.bound"
	EventHandedOff      = "handed_off"
)
