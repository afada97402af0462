package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Listener feeds a subscription into a Bubble Tea update loop, one event per
// command.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// Listen subscribes to sub for the lifetime of ctx.
func Listen[T any](ctx context.Context, sub Subscriber[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: sub.Subscribe(ctx)}
}

// Next returns a command that yields the next Event[T] as a tea.Msg. Handle
// the event, then return Next again to keep listening. The command yields nil
// once the context is done or the subscription closes. A nil Listener returns
// a nil command.
func (l *Listener[T]) Next() tea.Cmd {
	if l == nil {
		return nil
	}
	ctx, ch := l.ctx, l.ch
	return func() tea.Msg {
		return receive(ctx, ch)
	}
}

func receive[T any](ctx context.Context, ch <-chan Event[T]) tea.Msg {
	select {
	case <-ctx.Done():
		return nil
	case event, ok := <-ch:
		if !ok {
			return nil
		}
		return event
	}
}
