package router

import (
	"context"
	"net/url"

	"github.com/wayfinder-dev/wayfinder/pkg/pattern"
)

// Handler handles a matched navigation.
// It typically renders the page for the target route. A returned error is
// routed to the router's error handler; it never escapes the pipeline.
type Handler func(ctx *Context) error

// Guard can veto a navigation before it takes effect.
// It receives the target and origin contexts (from is nil for the initial
// navigation). Returning false drops the navigation: the URL is not
// written, no middleware or handler runs, and the current route keeps its
// previous value. A returned error drops the navigation too, and is
// additionally routed to the error handler.
type Guard func(to, from *Context) (bool, error)

// Observer is notified after a navigation has committed.
// Observer errors are surfaced to the error handler but do not undo the
// committed navigation.
type Observer func(to, from *Context) error

// Middleware is interposed between route resolution and handler execution.
// Handle must either call next to continue the chain or return an error.
// Returning nil without calling next is a contract violation and is
// reported as a *MiddlewareContractError.
type Middleware interface {
	Handle(ctx *Context, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx *Context, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx *Context, next func() error) error {
	return f(ctx, next)
}

// History abstracts the browser address bar and history stack.
// The pkg/history package provides path-mode and fragment-mode
// implementations; tests supply in-memory fakes.
type History interface {
	// CurrentPath returns the application-visible path for the current
	// location, including any query string.
	CurrentPath() string

	// Write materializes a new location, either pushing a history entry or
	// replacing the current one.
	Write(path string, replace bool)

	// Listen subscribes to externally triggered location changes
	// (back/forward traversal, fragment edits). The returned function
	// removes the subscription.
	Listen(fn func(path string)) (stop func())

	// Back, Forward and Go delegate to the platform history stack.
	Back()
	Forward()
	Go(delta int)
}

// Route binds a compiled pattern to a handler.
// Routes are immutable after registration and owned by the router.
type Route struct {
	pattern *pattern.Pattern
	handler Handler
	opts    RouteOptions
}

// Template returns the route's original template string.
func (r *Route) Template() string {
	return r.pattern.Template()
}

// Name returns the route's registered name, if any.
func (r *Route) Name() string {
	return r.opts.Name
}

// Meta returns the metadata value registered under key, or nil.
func (r *Route) Meta(key string) any {
	if r.opts.Meta == nil {
		return nil
	}
	return r.opts.Meta[key]
}

// RouteOptions is the per-route configuration bag.
type RouteOptions struct {
	// Name is an optional route name for diagnostics and observers.
	Name string

	// Meta carries arbitrary per-route values readable by guards,
	// middleware and handlers.
	Meta map[string]any
}

// RouteOption configures route registration.
type RouteOption func(*RouteOptions)

// WithName names the route.
func WithName(name string) RouteOption {
	return func(o *RouteOptions) {
		o.Name = name
	}
}

// WithMeta attaches a metadata value to the route.
func WithMeta(key string, value any) RouteOption {
	return func(o *RouteOptions) {
		if o.Meta == nil {
			o.Meta = make(map[string]any)
		}
		o.Meta[key] = value
	}
}

// Context is the per-navigation context passed to guards, middleware and
// handlers. A fresh Context is built for every navigation attempt and is
// never reused.
type Context struct {
	// Path is the target path without query string or fragment.
	Path string

	// Params holds the extracted route parameters.
	Params map[string]string

	// Query holds the parsed query string values.
	Query url.Values

	// Route is the matched route. It is nil in not-found fallback contexts
	// when no catch-all route is registered.
	Route *Route

	// Router is the owning router, for nested navigation and inspection.
	Router *Router

	// State is the opaque navigation state passed via WithState, if any.
	State any

	ctx    context.Context
	values map[any]any
}

// SetValue stores a per-navigation value, typically set by middleware for
// downstream middleware and the handler.
func (c *Context) SetValue(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// Value returns a per-navigation value stored with SetValue, or nil.
func (c *Context) Value(key any) any {
	if c.values == nil {
		return nil
	}
	return c.values[key]
}

// Context returns the attempt's cancellation context. It is cancelled when
// a newer navigation supersedes this one, so long-running handlers can
// abandon stale work.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Param returns the named route parameter, or "".
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// QueryValue returns the first query value for key, or "".
func (c *Context) QueryValue(key string) string {
	return c.Query.Get(key)
}

// Bind decodes the route parameters into a tagged struct.
// See BindParams.
func (c *Context) Bind(target any) error {
	return BindParams(c.Params, target)
}

// Current describes the committed navigation state.
type Current struct {
	// Path is the committed path (without query string).
	Path string

	// Route is the matched route.
	Route *Route

	// Context is the navigation context the route handler ran with.
	Context *Context
}
