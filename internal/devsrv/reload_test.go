package devsrv

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(hub)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}

	// The hub registers the connection just after the handshake.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", hub.ClientCount())
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func TestHubBroadcastReload(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.BroadcastReload()

	var ev reloadEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ev.Kind != "page" || ev.Path != "" {
		t.Errorf("event = %+v, want page reload", ev)
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.Close()
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount after Close = %d, want 0", n)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.NextReader(); err == nil {
		t.Error("read after Close succeeded, want connection closed")
	}
}

func TestClientScriptDialsReloadPath(t *testing.T) {
	if !strings.Contains(ClientScript, ReloadPath) {
		t.Error("client script does not dial the reload endpoint")
	}
}
