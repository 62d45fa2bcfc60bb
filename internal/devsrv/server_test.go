package devsrv

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wayfinder-dev/wayfinder/internal/config"
)

const indexHTML = `<!doctype html>
<html>
<head><title>app</title></head>
<body><div id="app"></div></body>
</html>
`

func newTestConfig(t *testing.T, routing string, hotReload bool) *config.Config {
	t.Helper()

	dir := t.TempDir()
	dist := filepath.Join(dir, "dist")
	if err := os.MkdirAll(dist, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html": indexHTML,
		"style.css":  "body { margin: 0 }",
		"app.js":     "console.log('hi')",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dist, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfgJSON := `{"routing": "` + routing + `"}`
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(cfgJSON), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Dev.HotReload = hotReload
	return cfg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeStaticFile(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", false)})
	h := srv.Handler()

	rec := get(t, h, "/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "margin") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHistoryModeFallsBackToIndex(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", false)})
	h := srv.Handler()

	for _, path := range []string{"/", "/users/5", "/blog/hello-world"} {
		rec := get(t, h, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `id="app"`) {
			t.Errorf("GET %s did not serve index.html", path)
		}
	}
}

func TestHistoryModeMissingAssetIs404(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", false)})
	h := srv.Handler()

	// A path with an extension is a real asset request, not a route.
	if rec := get(t, h, "/missing.png"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHashModeServesIndexOnlyAtRoot(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "hash", false)})
	h := srv.Handler()

	if rec := get(t, h, "/"); rec.Code != http.StatusOK {
		t.Errorf("GET / status = %d, want 200", rec.Code)
	}
	if rec := get(t, h, "/users/5"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /users/5 status = %d, want 404 in hash mode", rec.Code)
	}
}

func TestReloadScriptInjected(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", true)})
	h := srv.Handler()

	rec := get(t, h, "/")
	body := rec.Body.String()
	if !strings.Contains(body, ReloadPath) {
		t.Error("served index.html missing reload client script")
	}
	if !strings.Contains(body, "</body>") || strings.Index(body, ReloadPath) > strings.Index(body, "</body>") {
		t.Error("reload script should be injected before </body>")
	}
}

func TestReloadScriptNotInjectedWhenDisabled(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", false)})
	h := srv.Handler()

	if strings.Contains(get(t, h, "/").Body.String(), ReloadPath) {
		t.Error("reload script injected with hot reload disabled")
	}
}

func TestReloadWebSocketBroadcast(t *testing.T) {
	srv := NewServer(ServerOptions{Config: newTestConfig(t, "history", true)})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Registration happens just after the handshake; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for srv.reload.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.reload.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", srv.reload.ClientCount())
	}

	srv.reload.BroadcastCSS("/style.css")

	var ev reloadEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ev.Kind != "css" || ev.Path != "/style.css" {
		t.Errorf("event = %+v", ev)
	}
}
