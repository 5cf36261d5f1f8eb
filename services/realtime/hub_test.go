package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// hubServer upgrades every request and registers it with the hub, using the
// session query parameter as the subscriber's group.
func hubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		client := hub.Register(conn, r.URL.Query().Get("session"))
		defer hub.Unregister(client)

		// Hold the connection open until the peer disconnects.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}))
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if sessionID != "" {
		url += "?session=" + sessionID
	}
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func waitForSubscribers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.Subscribers() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, have %d", want, hub.Subscribers())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := hubServer(t, hub)
	defer srv.Close()

	dashboard := dial(t, srv, "")
	guest := dial(t, srv, "room_101")
	waitForSubscribers(t, hub, 2)

	hub.Broadcast("new_request", map[string]string{"id": "req-1"})

	for _, conn := range []*websocket.Conn{dashboard, guest} {
		ev := readEvent(t, conn)
		assert.Equal(t, "new_request", ev.Event)
	}
}

func TestEmitIsScopedToSessionGroup(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := hubServer(t, hub)
	defer srv.Close()

	dashboard := dial(t, srv, "")
	guest := dial(t, srv, "room_101")
	waitForSubscribers(t, hub, 2)

	hub.Emit("room_101", "proactive_message", map[string]string{"text": "reminder"})
	hub.Broadcast("request_updated", map[string]string{"id": "req-2"})

	// The guest sees the scoped event first, then the broadcast.
	ev := readEvent(t, guest)
	assert.Equal(t, "proactive_message", ev.Event)
	ev = readEvent(t, guest)
	assert.Equal(t, "request_updated", ev.Event)

	// The dashboard never sees the scoped event.
	ev = readEvent(t, dashboard)
	assert.Equal(t, "request_updated", ev.Event)
}

func TestUnregisterRemovesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := hubServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	conn.Close(websocket.StatusNormalClosure, "")
	waitForSubscribers(t, hub, 0)
}
