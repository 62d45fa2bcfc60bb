// Package pattern compiles route templates into matchers.
//
// A template is a sequence of path segments:
//
//	/blog          literal segment
//	/blog/:slug    named parameter (one or more non-slash characters)
//	/files/*rest   wildcard (greedy, consumes the remainder of the path)
//
// Templates are parsed into an explicit segment list before a matcher is
// generated, so malformed templates (duplicate parameter names, a wildcard
// that is not the final segment) are rejected at compile time instead of
// silently misbehaving at match time.
//
//	p, err := pattern.Compile("/users/:id")
//	params, ok := p.Match("/users/42")
//	// params["id"] == "42"
package pattern
