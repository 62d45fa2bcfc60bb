package router

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/wayfinder-dev/wayfinder/pkg/pattern"
)

// Router is the navigation facade. It owns the route table, the hook and
// middleware lists, and the committed current route. Create one per
// application with New; the zero value is not usable.
type Router struct {
	mu         sync.Mutex
	table      table
	middleware []Middleware
	guards     []Guard
	observers  []Observer
	onError    ErrorHandler
	current    *Current

	// generation numbers navigation attempts. An attempt that is no longer
	// the newest at commit time is discarded.
	generation uint64
	cancel     context.CancelFunc

	history    History
	logger     *slog.Logger
	stopListen func()
}

// Option configures a Router at construction.
type Option func(*Router)

// WithHistory sets the history adapter used to read and write the address
// bar. Without one the router still resolves and dispatches, which is the
// normal setup in tests and in embedded hosts.
func WithHistory(h History) Option {
	return func(r *Router) {
		r.history = h
	}
}

// WithLogger sets the router's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithErrorHandler sets the navigation error handler. The default logs the
// error and continues.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		r.onError = h
	}
}

// New creates a router.
func New(opts ...Option) *Router {
	r := &Router{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle registers a route. Routes are matched in registration order, first
// match wins, so catch-all templates ("*", "/404") belong last.
//
// Handle panics on a malformed template (duplicate parameter names, an
// interior wildcard): that is a programming error in route configuration
// and should fail loudly at development time. Re-registering an identical
// template appends a second, unreachable entry rather than replacing the
// first.
func (r *Router) Handle(template string, handler Handler, opts ...RouteOption) *Router {
	p, err := pattern.Compile(template)
	if err != nil {
		panic(err)
	}

	var o RouteOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	r.table.add(&Route{pattern: p, handler: handler, opts: o})
	r.mu.Unlock()
	return r
}

// Use appends middleware to the global chain.
func (r *Router) Use(mw ...Middleware) *Router {
	r.mu.Lock()
	r.middleware = append(r.middleware, mw...)
	r.mu.Unlock()
	return r
}

// BeforeEach appends a guard run before every navigation.
func (r *Router) BeforeEach(g Guard) *Router {
	r.mu.Lock()
	r.guards = append(r.guards, g)
	r.mu.Unlock()
	return r
}

// AfterEach appends an observer notified after every committed navigation.
func (r *Router) AfterEach(o Observer) *Router {
	r.mu.Lock()
	r.observers = append(r.observers, o)
	r.mu.Unlock()
	return r
}

// OnError replaces the navigation error handler.
func (r *Router) OnError(h ErrorHandler) *Router {
	r.mu.Lock()
	r.onError = h
	r.mu.Unlock()
	return r
}

// Init binds the history adapter's change signal and runs the initial
// navigation for the current location. Call it once, after registration.
func (r *Router) Init() error {
	if r.history == nil {
		return nil
	}
	r.stopListen = r.history.Listen(func(path string) {
		// The platform already moved the address bar; resolve and dispatch
		// without writing.
		r.run(path, runInputs{})
	})
	return r.run(r.history.CurrentPath(), runInputs{})
}

// Close unbinds platform listeners and cancels any in-flight navigation.
func (r *Router) Close() {
	if r.stopListen != nil {
		r.stopListen()
		r.stopListen = nil
	}
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
}

// Navigate runs the navigation pipeline for the target path. The target may
// carry a query string and fragment.
//
// On success the history adapter's Write runs after all guards pass and
// before middleware, so a guard rejection leaves the address bar untouched.
// A guard rejection drops the navigation silently and returns nil. Errors
// from guards, middleware or the handler are routed to the error handler
// and also returned, so explicit callers can observe them.
func (r *Router) Navigate(path string, opts ...NavigateOption) error {
	var o NavigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return r.run(path, runInputs{write: true, replace: o.Replace, state: o.State})
}

// Back navigates back in platform history.
func (r *Router) Back() {
	if r.history != nil {
		r.history.Back()
	}
}

// Forward navigates forward in platform history.
func (r *Router) Forward() {
	if r.history != nil {
		r.history.Forward()
	}
}

// Go moves delta entries through platform history.
func (r *Router) Go(delta int) {
	if r.history != nil {
		r.history.Go(delta)
	}
}

// Routes returns a snapshot of the registered templates in order.
func (r *Router) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.templates()
}

// Current returns the committed navigation state, or nil before the first
// successful navigation.
func (r *Router) Current() *Current {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// runInputs carries the per-attempt pipeline inputs.
type runInputs struct {
	write   bool
	replace bool
	state   any
}

// run executes one navigation attempt:
// resolve → guard → write → middleware → handle → commit.
func (r *Router) run(target string, in runInputs) error {
	// Resolving. Snapshot everything under the lock; the pipeline itself
	// runs unlocked so guards and handlers may navigate recursively.
	r.mu.Lock()
	r.generation++
	gen := r.generation
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	var from *Context
	if r.current != nil {
		from = r.current.Context
	}
	route, params := r.table.find(target)
	fallback := r.table.fallback()
	guards := append([]Guard(nil), r.guards...)
	middleware := append([]Middleware(nil), r.middleware...)
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	path, query := splitTarget(target)

	if route == nil {
		r.runNotFound(path, query, fallback, ctx)
		return nil
	}

	to := &Context{
		Path:   path,
		Params: params,
		Query:  query,
		Route:  route,
		Router: r,
		State:  in.state,
		ctx:    ctx,
	}

	// Guarding: sequential, each awaited; false or error drops the attempt
	// before anything is written.
	for _, g := range guards {
		ok, err := g(to, from)
		if err != nil {
			return r.fail(to, err)
		}
		if !ok {
			r.logger.Debug("navigation vetoed by guard", "path", path)
			return nil
		}
	}

	// Writing: explicit navigations materialize the URL once the guards
	// have passed. Signal-driven attempts skip this, the platform already
	// moved the address bar.
	if in.write && r.history != nil {
		r.history.Write(target, in.replace)
	}

	// Running and Handling.
	err := compose(to, middleware, func() error {
		return route.handler(to)
	})
	if err != nil {
		return r.fail(to, err)
	}

	// Settled: commit unless a newer attempt superseded this one while it
	// was suspended.
	r.mu.Lock()
	stale := r.generation != gen
	if !stale {
		r.current = &Current{Path: path, Route: route, Context: to}
	}
	r.mu.Unlock()
	if stale {
		r.logger.Debug("stale navigation discarded", "path", path, "generation", gen)
		return nil
	}

	for _, o := range observers {
		if err := o(to, from); err != nil {
			// Observer failures must not undo the committed navigation;
			// they are surfaced at low severity.
			r.fail(to, err)
		}
	}
	return nil
}

// runNotFound handles an unmatched path: the registered "*" or "/404"
// entry when present, a logged built-in otherwise. Guards and middleware do
// not run for the not-found terminal.
func (r *Router) runNotFound(path string, query url.Values, fallback *Route, ctx context.Context) {
	if fallback == nil {
		r.logger.Warn("no route matched", "path", path)
		return
	}

	to := &Context{
		Path:   path,
		Params: map[string]string{},
		Query:  query,
		Route:  fallback,
		Router: r,
		ctx:    ctx,
	}
	if err := fallback.handler(to); err != nil {
		r.fail(to, err)
	}
}

// fail routes an error through the single pipeline boundary.
func (r *Router) fail(ctx *Context, err error) *NavigationError {
	ne := &NavigationError{Path: ctx.Path, Route: ctx.Route, Err: err}

	r.mu.Lock()
	handler := r.onError
	r.mu.Unlock()

	if handler != nil {
		handler(ne)
	} else {
		r.logger.Error("navigation failed", "path", ne.Path, "error", err)
	}
	return ne
}

// splitTarget separates a navigation target into its path and parsed query
// values. The fragment is dropped. Malformed query pairs are parsed
// best-effort: whatever url.ParseQuery recovered is kept.
func splitTarget(target string) (string, url.Values) {
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}

	path := target
	query := url.Values{}
	if i := strings.IndexByte(target, '?'); i >= 0 {
		path = target[:i]
		// Partial results on a malformed pair are still usable.
		q, _ := url.ParseQuery(target[i+1:])
		query = q
	}
	if path == "" {
		path = "/"
	}
	return path, query
}
