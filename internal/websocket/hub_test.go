package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("user-1", "resident", nil, hub)
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.IsUserConnected("user-1")
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.GetClientCount())

	hub.unregister <- client

	require.Eventually(t, func() bool {
		return !hub.IsUserConnected("user-1")
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestHubBroadcastToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("user-1", "resident", nil, hub)
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.IsUserConnected("user-1")
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToUser("user-1", map[string]string{"type": "achievement"})

	select {
	case data := <-client.send:
		assert.Contains(t, string(data), "achievement")
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubBroadcastToRole(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	admin := NewClient("admin-1", "admin", nil, hub)
	resident := NewClient("user-1", "resident", nil, hub)
	hub.register <- admin
	hub.register <- resident
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToRole("admin", map[string]string{"type": "bin_alert"})

	select {
	case data := <-admin.send:
		assert.Contains(t, string(data), "bin_alert")
	case <-time.After(time.Second):
		t.Fatal("no message delivered to admin")
	}
	assert.Empty(t, resident.send)
}

// A stalled client must be evicted when its buffer fills, and concurrent
// role broadcasts must stay safe while the eviction runs.
func TestHubEvictsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("user-1", "resident", nil, hub)
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.IsUserConnected("user-1")
	}, time.Second, 10*time.Millisecond)

	// Nothing drains client.send; fill it to the brim.
	for i := 0; i < cap(client.send); i++ {
		client.send <- []byte("backlog")
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.BroadcastToRole("resident", map[string]string{"type": "tick"})
		}()
	}
	hub.BroadcastToUser("user-1", map[string]string{"type": "achievement"})
	wg.Wait()

	require.Eventually(t, func() bool {
		return !hub.IsUserConnected("user-1")
	}, time.Second, 10*time.Millisecond)
}
