package router

// NavigateOptions configures a navigation attempt.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// State is opaque application state carried on the navigation context.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches opaque state to the navigation context.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}
