package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var calls []string
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { calls = append(calls, "first"); return nil })
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { calls = append(calls, "second"); return nil })
		bus.Subscribe(SnapshotDiscardedType, func(e Event) error { calls = append(calls, "other"); return nil })

		err := bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, SnapshotRefreshed{Sequence: 1}))

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("should collect handler errors and recover panics", func(t *testing.T) {
		bus := NewEventBus()
		boom := errors.New("boom")
		reached := false
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { return boom })
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { panic("kaput") })
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { reached = true; return nil })

		err := bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, nil))

		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "kaput")
		assert.True(t, reached)
	})

	t.Run("should not publish on cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(SnapshotRefreshedType, func(e Event) error { called = true; return nil })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, SnapshotRefreshedType, nil))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should stop calling unsubscribed handler", func(t *testing.T) {
		bus := NewEventBus()
		count := 0
		unsubscribe := bus.Subscribe(SnapshotRefreshedType, func(e Event) error { count++; return nil })

		require.NoError(t, bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, nil)))
		unsubscribe()
		require.NoError(t, bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, nil)))

		assert.Equal(t, 1, count)
	})
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var got []uint64
	SubscribeTyped(bus, SnapshotRefreshedType, func(ctx context.Context, e SnapshotRefreshed) error {
		got = append(got, e.Sequence)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, SnapshotRefreshed{Sequence: 3})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), SnapshotRefreshedType, "not a snapshot")))

	assert.Equal(t, []uint64{3}, got)
}
