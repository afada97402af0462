package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListener_YieldsEventsInOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	l := Listen[int](t.Context(), broker)
	for i := range 3 {
		broker.Publish(TextEvent, i)
	}
	for i := range 3 {
		event, ok := l.Next()().(Event[int])
		require.True(t, ok, "msg should be Event[int]")
		require.Equal(t, TextEvent, event.Type)
		require.Equal(t, i, event.Payload)
	}
}

func TestListener_NilWhenCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := Listen[string](ctx, broker)
	cancel()
	require.Nil(t, l.Next()())
}

func TestListener_NilWhenBrokerClosed(t *testing.T) {
	broker := NewBroker[string]()
	l := Listen[string](t.Context(), broker)
	broker.Close()
	require.Nil(t, l.Next()())
}

func TestListener_NilListener(t *testing.T) {
	var l *Listener[string]
	require.Nil(t, l.Next())
}
