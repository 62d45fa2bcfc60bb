package router

import "fmt"

// MiddlewareContractError reports a middleware that returned nil without
// calling next. This is a programming error in route configuration: the
// chain would otherwise stall silently, so the pipeline fails loudly
// instead.
type MiddlewareContractError struct {
	// Index is the middleware's position in the registered chain.
	Index int
}

func (e *MiddlewareContractError) Error() string {
	return fmt.Sprintf("router: middleware %d returned without calling next", e.Index)
}

// NavigationError wraps an error raised by a guard, middleware or handler
// during a navigation attempt.
type NavigationError struct {
	// Path is the target path of the failed attempt.
	Path string

	// Route is the matched route, nil if the failure happened before or
	// without a match.
	Route *Route

	// Err is the underlying error.
	Err error
}

func (e *NavigationError) Error() string {
	if e.Route != nil {
		return fmt.Sprintf("router: navigation to %s (route %s) failed: %v", e.Path, e.Route.Template(), e.Err)
	}
	return fmt.Sprintf("router: navigation to %s failed: %v", e.Path, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives every error raised during navigation.
// Errors are always intercepted at the pipeline boundary; they never escape
// to the caller's panic path. The default handler logs via the router's
// logger.
type ErrorHandler func(err *NavigationError)
