package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call typed handlers in registration order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []string
		SubscribeTyped(bus, UserCreatedType, func(e EventT[UserCreated]) error {
			calls = append(calls, "first:"+e.Data.Username)
			return nil
		})
		SubscribeTyped(bus, UserCreatedType, func(e EventT[UserCreated]) error {
			calls = append(calls, "second:"+e.Data.Username)
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), UserCreatedType, UserCreated{Id: 1, Username: "jane"}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"first:jane", "second:jane"}, calls)
	})

	t.Run("should stop at the first failing handler", func(t *testing.T) {
		// given
		bus := NewEventBus()
		failure := errors.New("seeding failed")
		secondCalled := false
		bus.Subscribe(UserCreatedType, func(e Event) error { return failure })
		bus.Subscribe(UserCreatedType, func(e Event) error {
			secondCalled = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), UserCreatedType, UserCreated{Id: 1}))

		// then
		assert.ErrorIs(t, err, failure)
		assert.False(t, secondCalled)
	})

	t.Run("should turn a handler panic into an error", func(t *testing.T) {
		bus := NewEventBus()
		bus.Subscribe(UserCreatedType, func(e Event) error { panic("boom") })

		err := bus.Publish(NewEvent(context.Background(), UserCreatedType, UserCreated{Id: 1}))

		assert.ErrorContains(t, err, "boom")
	})

	t.Run("should not call unsubscribed handler", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(UserCreatedType, func(e Event) error {
			called = true
			return nil
		})
		unsubscribe()

		// when
		err := bus.Publish(NewEvent(context.Background(), UserCreatedType, UserCreated{Id: 1}))

		// then
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("should refuse to publish with cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, UserCreatedType, UserCreated{Id: 1}))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
