// Package pubsub is a small generic publish/subscribe hub. View-models use it
// to announce property changes and the logger uses it to fan out entries.
package pubsub

import (
	"context"
	"time"
)

// EventType tags what happened to the payload.
type EventType string

const (
	// ChangedEvent reports that a property of an observed value changed.
	ChangedEvent EventType = "changed"
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
)

// Event is one published notification.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out ctx-scoped subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher fans a payload out to every current subscriber.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
