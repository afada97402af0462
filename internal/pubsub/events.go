// Package pubsub provides a generic publish/subscribe event system used for
// log entries and document change notifications.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent is used for append-only streams such as log entries.
	CreatedEvent EventType = "created"
	// TextEvent reports a change confined to the text of one token.
	TextEvent EventType = "text"
	// StructureEvent reports tokens or containers created, merged or zapped.
	StructureEvent EventType = "structure"
	// CursorEvent reports a cursor or selection change without edits.
	CursorEvent EventType = "cursor"
	// ReloadEvent reports that the whole tree was replaced.
	ReloadEvent EventType = "reload"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
