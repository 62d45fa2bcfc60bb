package router

// compose builds a handler chain from middleware and a final handler.
// Middleware executes in order (first to last), with the handler at the
// end. Each layer's next callback records that it was invoked; a middleware
// that returns nil without having called next yields a
// *MiddlewareContractError instead of a silent stall.
func compose(ctx *Context, mw []Middleware, handler func() error) error {
	chain := handler

	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		idx := i
		next := chain
		chain = func() error {
			called := false
			err := m.Handle(ctx, func() error {
				called = true
				return next()
			})
			if err == nil && !called {
				return &MiddlewareContractError{Index: idx}
			}
			return err
		}
	}

	return chain()
}

// Chain combines multiple middleware into one, preserving order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx *Context, next func() error) error {
		return compose(ctx, middleware, next)
	})
}

// Skip wraps mw so it is bypassed when condition holds.
func Skip(condition func(ctx *Context) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx *Context, next func() error) error {
		if condition(ctx) {
			return next()
		}
		return mw.Handle(ctx, next)
	})
}

// Only wraps mw so it runs only when condition holds.
func Only(condition func(ctx *Context) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx *Context, next func() error) error {
		if !condition(ctx) {
			return next()
		}
		return mw.Handle(ctx, next)
	})
}
