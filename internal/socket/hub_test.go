package socket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Notify("nobody", Event{Type: "order", EntityID: "x", Status: "Approved"})
}

func TestRegisterNotifyUnregister(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register("user-1", conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	// Registration runs in the server handler; wait for it to land.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients["user-1"]
		return ok
	}, time.Second, 10*time.Millisecond)

	hub.Notify("user-1", Event{Type: "damageClaim", EntityID: "abc", Status: "Commented"})

	_, message, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"damageClaim","entityId":"abc","status":"Commented"}`, string(message))

	hub.Unregister("user-1")
	hub.Notify("user-1", Event{Type: "damageClaim", EntityID: "abc", Status: "Approved"})
}
