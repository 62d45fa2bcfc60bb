package router

import "strings"

// table is the insertion-ordered route list.
// Lookup evaluates entries strictly in registration order and returns the
// first structural match. This is a deliberate, observable tie-break rule:
// more specific templates must be registered before more general ones.
type table struct {
	routes []*Route
}

// add appends a compiled route.
// No uniqueness check is performed; re-adding an identical template creates
// a second, unreachable entry.
func (t *table) add(r *Route) {
	t.routes = append(t.routes, r)
}

// find returns the first route matching path, plus its extracted
// parameters. The query string and fragment are stripped before matching.
// It returns nil when no route matches.
func (t *table) find(path string) (*Route, map[string]string) {
	path = normalizePath(path)
	for _, r := range t.routes {
		if params, ok := r.pattern.Match(path); ok {
			return r, params
		}
	}
	return nil, nil
}

// fallback returns the registered not-found route: the first entry with
// template "*" or "/404", or nil.
func (t *table) fallback() *Route {
	for _, r := range t.routes {
		switch r.Template() {
		case "*", "/404":
			return r
		}
	}
	return nil
}

// templates returns a snapshot of the registered templates in order.
func (t *table) templates() []string {
	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.Template()
	}
	return out
}

// normalizePath strips the fragment and query string from a path.
func normalizePath(path string) string {
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	return path
}
