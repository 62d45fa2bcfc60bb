package devsrv

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadPath is the websocket endpoint the injected client script dials.
const ReloadPath = "/_wayfinder/reload"

// reloadEvent is the wire format pushed to browsers. Kind is "page" for
// a full reload or "css" for an in-place stylesheet swap; Path names the
// changed stylesheet for css events.
type reloadEvent struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

// Hub fans change notifications out to connected browsers. It serves
// the websocket endpoint itself, so it can be mounted directly at
// ReloadPath.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Dev server only; the page and the socket share an origin
			// but proxied setups rewrite Host, so don't enforce it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and parks the connection until the
// browser goes away. Inbound frames are drained and ignored; the
// protocol is push-only.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	h.drop(conn)
}

// BroadcastReload tells every connected browser to do a full page
// reload.
func (h *Hub) BroadcastReload() {
	h.broadcast(reloadEvent{Kind: "page"})
}

// BroadcastCSS tells every connected browser to refresh the stylesheet
// at path without reloading the page.
func (h *Hub) BroadcastCSS(path string) {
	h.broadcast(reloadEvent{Kind: "css", Path: path})
}

func (h *Hub) broadcast(ev reloadEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount reports how many browsers are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every browser and rejects future connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

// ClientScript is injected into served HTML so browsers follow the
// hub. CSS events swap the matching <link> in place, which keeps the
// client router's state alive; anything else reloads the page.
const ClientScript = `
<script>
(function () {
	var scheme = location.protocol === "https:" ? "wss://" : "ws://";
	var endpoint = scheme + location.host + "` + ReloadPath + `";
	var backoff = 500;

	function freshen(href) {
		var u = new URL(href, location.href);
		u.searchParams.set("v", Date.now().toString(36));
		return u.toString();
	}

	function swapCSS(path) {
		var links = document.querySelectorAll('link[rel="stylesheet"]');
		for (var i = 0; i < links.length; i++) {
			var u = new URL(links[i].href, location.href);
			if (!path || u.pathname === path) {
				links[i].href = freshen(links[i].href);
			}
		}
	}

	function open() {
		var socket = new WebSocket(endpoint);
		socket.onopen = function () {
			backoff = 500;
		};
		socket.onmessage = function (event) {
			var ev;
			try {
				ev = JSON.parse(event.data);
			} catch (e) {
				return;
			}
			if (ev.kind === "css") {
				swapCSS(ev.path);
			} else {
				location.reload();
			}
		};
		socket.onclose = function () {
			setTimeout(open, backoff);
			backoff = Math.min(backoff * 2, 10000);
		};
	}

	open();
})();
</script>
`
