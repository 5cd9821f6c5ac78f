package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishDeliversToSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	hub.Publish("u1", Event{Event: "notification", Data: "hello"})

	select {
	case ev := <-ch:
		assert.Equal(t, "u1", ev.UserID)
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected an event")
	}
}

func TestHub_PublishSkipsOtherUsers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	hub.Publish("u2", Event{Event: "notification"})

	select {
	case <-ch:
		t.Fatal("unexpected event for another user")
	default:
	}
}

func TestHub_PublishDoesNotBlockWhenBufferFull(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("u1")
	defer cleanup()

	for i := 0; i < hub.bufferSize*3; i++ {
		hub.Publish("u1", Event{Event: "tick"})
	}
	assert.Equal(t, 1, hub.SubscriberCount("u1"))
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")
	_, cleanup2 := hub.Subscribe("u2")
	defer cleanup2()
	require.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("u1"))
	assert.Equal(t, 1, hub.TotalSubscribers())
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()
	ch1, c1 := hub.Subscribe("a")
	ch2, c2 := hub.Subscribe("b")
	defer c1()
	defer c2()

	hub.PublishToMany([]string{"a", "b"}, Event{Event: "notification"})

	assert.Equal(t, "a", (<-ch1).UserID)
	assert.Equal(t, "b", (<-ch2).UserID)
}

func TestHub_CloseEndsStreams(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")

	hub.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.TotalSubscribers())
	assert.NotPanics(t, cleanup)

	late, lateCleanup := hub.Subscribe("u2")
	_, open = <-late
	assert.False(t, open)
	assert.NotPanics(t, lateCleanup)
}
