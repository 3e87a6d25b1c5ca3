package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newClient(hub *Hub, buffer int) *Client {
	return &Client{id: uuid.New(), hub: hub, send: make(chan []byte, buffer)}
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
		return Event{}
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
	assert.NotNil(t, hub.logger)
}

func TestHub_AddAndRemoveClient(t *testing.T) {
	hub := testHub(t)
	client := newClient(hub, 4)

	hub.register <- client
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, EventConnected, receive(t, client).Type)

	hub.unregister <- client
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_Broadcast(t *testing.T) {
	hub := testHub(t)
	first := newClient(hub, 10)
	second := newClient(hub, 10)

	hub.register <- first
	hub.register <- second
	receive(t, first)
	receive(t, second)

	hub.Broadcast(EventStateChanged, map[string]int{"version": 3})

	for _, c := range []*Client{first, second} {
		event := receive(t, c)
		assert.Equal(t, EventStateChanged, event.Type)
		data, ok := event.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(3), data["version"])
	}
}

func TestHub_LateClientGetsLastState(t *testing.T) {
	hub := testHub(t)
	early := newClient(hub, 10)
	hub.register <- early
	receive(t, early)

	hub.Broadcast(EventStateChanged, map[string]int{"version": 1})
	hub.Broadcast(EventStateChanged, map[string]int{"version": 2})
	receive(t, early)
	receive(t, early)

	late := newClient(hub, 10)
	hub.register <- late

	assert.Equal(t, EventConnected, receive(t, late).Type)
	event := receive(t, late)
	assert.Equal(t, EventStateChanged, event.Type)
	assert.Equal(t, float64(2), event.Data.(map[string]any)["version"])
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := testHub(t)
	slow := newClient(hub, 1)

	hub.register <- slow
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, time.Second, 10*time.Millisecond)

	// the connected event fills the only slot
	hub.Broadcast(EventStateChanged, map[string]int{"version": 1})

	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RunStopsOnCancel(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := newClient(hub, 4)
	hub.register <- client
	receive(t, client)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, open := <-client.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectedClients())
}
