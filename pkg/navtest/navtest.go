// Package navtest provides test helpers for the navigation router.
//
// A Recorder manufactures guards, middleware, observers and handlers that
// log their invocations in order, so tests can assert the exact pipeline
// sequence:
//
//	rec := navtest.NewRecorder()
//	r, _ := navtest.NewRouter("/")
//	r.BeforeEach(rec.Guard("auth", true))
//	r.Use(rec.Middleware("timing"))
//	r.Handle("/x", rec.Handler("x"))
//	r.Navigate("/x")
//	// rec.Events() == ["guard:auth", "mw:timing:before", "handler:x", "mw:timing:after"]
package navtest

import (
	"sync"

	"github.com/wayfinder-dev/wayfinder/pkg/history"
	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// Recorder collects pipeline events in invocation order.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an event.
func (r *Recorder) Record(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Handler returns a route handler that records "handler:<name>".
func (r *Recorder) Handler(name string) router.Handler {
	return func(ctx *router.Context) error {
		r.Record("handler:" + name)
		return nil
	}
}

// FailingHandler returns a route handler that records its invocation and
// returns err.
func (r *Recorder) FailingHandler(name string, err error) router.Handler {
	return func(ctx *router.Context) error {
		r.Record("handler:" + name)
		return err
	}
}

// Guard returns a guard that records "guard:<name>" and returns allow.
func (r *Recorder) Guard(name string, allow bool) router.Guard {
	return func(to, from *router.Context) (bool, error) {
		r.Record("guard:" + name)
		return allow, nil
	}
}

// Middleware returns middleware that records "mw:<name>:before", calls
// next, then records "mw:<name>:after".
func (r *Recorder) Middleware(name string) router.Middleware {
	return router.MiddlewareFunc(func(ctx *router.Context, next func() error) error {
		r.Record("mw:" + name + ":before")
		err := next()
		r.Record("mw:" + name + ":after")
		return err
	})
}

// StallingMiddleware returns middleware that records its invocation and
// returns nil without calling next, violating the chain contract.
func (r *Recorder) StallingMiddleware(name string) router.Middleware {
	return router.MiddlewareFunc(func(ctx *router.Context, next func() error) error {
		r.Record("mw:" + name + ":stalled")
		return nil
	})
}

// Observer returns an observer that records "after:<name>".
func (r *Recorder) Observer(name string) router.Observer {
	return func(to, from *router.Context) error {
		r.Record("after:" + name)
		return nil
	}
}

// NewRouter creates a router wired to a memory history platform in path
// mode, positioned at initial. It returns the router and the underlying
// memory platform for stack assertions.
func NewRouter(initial string, opts ...router.Option) (*router.Router, *history.Memory) {
	mem := history.NewMemory(initial)
	adapter := history.New(history.ModePath, mem)
	opts = append([]router.Option{router.WithHistory(adapter)}, opts...)
	return router.New(opts...), mem
}

// NewFragmentRouter is NewRouter in fragment mode.
func NewFragmentRouter(initial string, opts ...router.Option) (*router.Router, *history.Memory) {
	mem := history.NewMemory(initial)
	adapter := history.New(history.ModeFragment, mem)
	opts = append([]router.Option{router.WithHistory(adapter)}, opts...)
	return router.New(opts...), mem
}
