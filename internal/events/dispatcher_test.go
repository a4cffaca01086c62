package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spec-kit/employee-registry/internal/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublish_InvokesSubscribersOfType(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var got []events.EventType
	d.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(events.EventEmployeeDeleted, func(_ context.Context, e events.Event) error {
		got = append(got, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventEmployeeCreated}))
	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventEmployeeUpdated}))

	assert.Equal(t, []events.EventType{events.EventEmployeeCreated}, got)
}

func TestPublish_ContinuesAfterHandlerError(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	errFirst := errors.New("first failed")

	calls := 0
	d.Subscribe(events.EventEmployeeUpdated, func(context.Context, events.Event) error {
		calls++
		return errFirst
	})
	d.Subscribe(events.EventEmployeeUpdated, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), events.Event{Type: events.EventEmployeeUpdated})
	require.ErrorIs(t, err, errFirst)
	assert.Equal(t, 2, calls)
}

func TestSubscribe_ConcurrentWithPublish(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(events.EventEmployeeCreated, func(context.Context, events.Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), events.Event{Type: events.EventEmployeeCreated})
		}()
	}
	wg.Wait()
}
