package devsrv

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	"github.com/wayfinder-dev/wayfinder/internal/errors"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server logs. A nil logger uses slog.Default().
	Logger *slog.Logger

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)
}

// Server serves a built application from the dist directory with live
// reload. In history routing mode, application paths fall back to
// index.html so a full page load on a deep link still boots the app.
type Server struct {
	config     *config.Config
	options    ServerOptions
	logger     *slog.Logger
	reload     *Hub
	watcher    *Watcher
	httpServer *http.Server
	dist       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var reload *Hub
	var watcher *Watcher
	if cfg.Dev.HotReload {
		reload = NewHub()
		watcher = NewWatcher(WatcherConfig{
			Paths: []string{cfg.OutputPath()},
		})
	}

	return &Server{
		config:  cfg,
		options: options,
		logger:  logger,
		reload:  reload,
		watcher: watcher,
		dist:    cfg.OutputPath(),
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	if s.reload != nil {
		r.Get(ReloadPath, s.reload.ServeHTTP)
	}
	r.NotFound(s.serveApp)

	return r
}

// Start checks the build output, starts the watcher, and serves until the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	if info, err := os.Stat(s.dist); err != nil || !info.IsDir() {
		return errors.New("E200").
			WithDetail("Expected build output at " + s.dist).
			WithSuggestion("Build the application, or fix build.output in wayfinder.json")
	}
	if s.config.HistoryMode() {
		if _, err := os.Stat(filepath.Join(s.dist, "index.html")); err != nil {
			return errors.New("E201").
				WithDetail("History-mode fallback needs " + filepath.Join(s.dist, "index.html"))
		}
	}

	if s.watcher != nil {
		s.watcher.OnChange(s.handleChange)
		go s.watcher.Start(ctx)
	}

	s.httpServer = &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: s.Handler(),
	}

	s.logger.Info("dev server running",
		"url", s.config.DevURL(),
		"dist", s.dist,
		"routing", s.config.Routing,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false

	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		s.httpServer.Shutdown(context.Background())
	}
}

// handleChange maps a file change to a reload notification.
func (s *Server) handleChange(change Change) {
	if s.reload == nil {
		return
	}

	rel, err := filepath.Rel(s.dist, change.Path)
	if err != nil {
		rel = change.Path
	}

	switch change.Type {
	case ChangeCSS:
		s.logger.Debug("css changed", "file", rel)
		s.reload.BroadcastCSS("/" + filepath.ToSlash(rel))
	default:
		s.logger.Debug("file changed", "file", rel)
		s.reload.BroadcastReload()
	}

	if s.options.OnReload != nil {
		s.options.OnReload(s.reload.ClientCount())
	}
}

// serveApp serves files from dist. Requests that match no file fall back
// to index.html in history mode so the client router can take over.
func (s *Server) serveApp(w http.ResponseWriter, r *http.Request) {
	reqPath := cleanPath(r.URL.Path)

	full := filepath.Join(s.dist, filepath.FromSlash(strings.TrimPrefix(reqPath, "/")))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		if strings.HasSuffix(full, ".html") {
			s.serveHTML(w, r, full)
			return
		}
		http.ServeFile(w, r, full)
		return
	}

	// No such file. History mode sends application paths to index.html;
	// paths with a file extension are genuine 404s either way.
	if s.config.HistoryMode() && filepath.Ext(reqPath) == "" {
		s.serveHTML(w, r, filepath.Join(s.dist, "index.html"))
		return
	}
	if reqPath == "/" {
		s.serveHTML(w, r, filepath.Join(s.dist, "index.html"))
		return
	}

	http.NotFound(w, r)
}

// serveHTML serves an HTML file with the live-reload script injected.
func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, file string) {
	data, err := os.ReadFile(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if s.reload != nil {
		if idx := bytes.LastIndex(data, []byte("</body>")); idx >= 0 {
			var b bytes.Buffer
			b.Write(data[:idx])
			b.WriteString(ClientScript)
			b.Write(data[idx:])
			data = b.Bytes()
		} else {
			data = append(data, []byte(ClientScript)...)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// cleanPath normalizes a request path to a rooted, dot-free form.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
