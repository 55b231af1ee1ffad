package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/access-gate/internal/events"
)

func TestMultiSinkFansOut(t *testing.T) {
	var first, second []string
	sink := MultiSink{
		SinkFunc(func(message string) { first = append(first, message) }),
		SinkFunc(func(message string) { second = append(second, message) }),
	}

	sink.Warn("access denied")

	assert.Equal(t, []string{"access denied"}, first)
	assert.Equal(t, []string{"access denied"}, second)
}

func TestDispatcherSinkPublishesAccessDenied(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var seen []events.Event
	dispatcher.Subscribe(events.EventAccessDenied, func(ctx context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})

	sink := NewDispatcherSink(dispatcher, "/admin")
	sink.Warn("access denied")

	require.Len(t, seen, 1)
	assert.NotEmpty(t, seen[0].ID)
	payload, ok := seen[0].Payload.(events.AccessDeniedPayload)
	require.True(t, ok)
	assert.Equal(t, "/admin", payload.Path)
	assert.Equal(t, "access denied", payload.Message)
}
