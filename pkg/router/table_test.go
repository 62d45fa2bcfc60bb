package router

import (
	"testing"

	"github.com/wayfinder-dev/wayfinder/pkg/pattern"
)

func newRoute(t *testing.T, template string) *Route {
	t.Helper()
	p, err := pattern.Compile(template)
	if err != nil {
		t.Fatalf("Compile(%q): %v", template, err)
	}
	return &Route{pattern: p}
}

func TestTableFindRegistrationOrder(t *testing.T) {
	var tbl table
	first := newRoute(t, "/a/:x")
	second := newRoute(t, "/a/b")
	tbl.add(first)
	tbl.add(second)

	// /a/b matches both entries; the earlier registration wins even though
	// the later one is more specific.
	got, params := tbl.find("/a/b")
	if got != first {
		t.Fatalf("find returned %q, want first-registered %q", got.Template(), first.Template())
	}
	if params["x"] != "b" {
		t.Errorf("params[x] = %q, want %q", params["x"], "b")
	}
}

func TestTableFindStripsQueryAndFragment(t *testing.T) {
	var tbl table
	r := newRoute(t, "/a")
	tbl.add(r)

	for _, path := range []string{"/a", "/a?x=1", "/a#frag", "/a?x=1#frag"} {
		if got, _ := tbl.find(path); got != r {
			t.Errorf("find(%q) missed", path)
		}
	}
}

func TestTableFindNoMatch(t *testing.T) {
	var tbl table
	tbl.add(newRoute(t, "/a"))

	if got, params := tbl.find("/b"); got != nil || params != nil {
		t.Errorf("find(/b) = %v, %v, want nil, nil", got, params)
	}
}

func TestTableFallback(t *testing.T) {
	var tbl table
	if tbl.fallback() != nil {
		t.Error("empty table should have no fallback")
	}

	tbl.add(newRoute(t, "/a"))
	notFound := newRoute(t, "/404")
	tbl.add(notFound)
	if got := tbl.fallback(); got != notFound {
		t.Errorf("fallback = %v, want /404 entry", got)
	}

	var tbl2 table
	catchAll := newRoute(t, "*")
	tbl2.add(catchAll)
	if got := tbl2.fallback(); got != catchAll {
		t.Errorf("fallback = %v, want * entry", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/a", "/a"},
		{"/a?x=1", "/a"},
		{"/a#f", "/a"},
		{"/a?x=1#f", "/a"},
		{"?x=1", "/"},
		{"", "/"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTarget(t *testing.T) {
	path, query := splitTarget("/a/b?x=1&y=2&y=3#frag")
	if path != "/a/b" {
		t.Errorf("path = %q, want /a/b", path)
	}
	if query.Get("x") != "1" {
		t.Errorf("query[x] = %q, want 1", query.Get("x"))
	}
	if got := query["y"]; len(got) != 2 {
		t.Errorf("query[y] = %v, want two values", got)
	}

	path, query = splitTarget("/plain")
	if path != "/plain" || len(query) != 0 {
		t.Errorf("splitTarget(/plain) = %q, %v", path, query)
	}
}
