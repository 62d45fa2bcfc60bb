package pattern

import (
	"errors"
	"testing"
)

func TestCompileLiteral(t *testing.T) {
	p, err := Compile("/blog")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	params, ok := p.Match("/blog")
	if !ok {
		t.Fatal("expected match for /blog")
	}
	if len(params) != 0 {
		t.Errorf("params = %v, want empty", params)
	}

	if _, ok := p.Match("/blog/post"); ok {
		t.Error("should not match /blog/post")
	}
	if _, ok := p.Match("/blo"); ok {
		t.Error("should not match /blo")
	}
}

func TestCompileRoot(t *testing.T) {
	p, err := Compile("/")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := p.Match("/"); !ok {
		t.Error("expected / to match /")
	}
	if _, ok := p.Match("/about"); ok {
		t.Error("/ should not match /about")
	}
}

func TestCompileParams(t *testing.T) {
	tests := []struct {
		name     string
		template string
		path     string
		want     map[string]string
	}{
		{"single param", "/users/:id", "/users/42", map[string]string{"id": "42"}},
		{"two params", "/blog/:year/:slug", "/blog/2024/hello", map[string]string{"year": "2024", "slug": "hello"}},
		{"param then literal", "/users/:id/edit", "/users/7/edit", map[string]string{"id": "7"}},
		{"non-slash chars", "/posts/:slug", "/posts/hello-world_1.2", map[string]string{"slug": "hello-world_1.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.template)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.template, err)
			}
			params, ok := p.Match(tt.path)
			if !ok {
				t.Fatalf("expected %q to match %q", tt.path, tt.template)
			}
			if len(params) != len(tt.want) {
				t.Fatalf("params = %v, want %v", params, tt.want)
			}
			for k, v := range tt.want {
				if params[k] != v {
					t.Errorf("params[%q] = %q, want %q", k, params[k], v)
				}
			}
		})
	}
}

func TestParamRequiresValue(t *testing.T) {
	p := MustCompile("/users/:id")

	// A parameter matches one or more characters, so the adjacent segment
	// cannot collapse away.
	if _, ok := p.Match("/users/"); ok {
		t.Error("should not match /users/ (empty param)")
	}
	if _, ok := p.Match("/users"); ok {
		t.Error("should not match /users")
	}
	if _, ok := p.Match("/users/1/2"); ok {
		t.Error("param must not span a slash")
	}
}

func TestWildcard(t *testing.T) {
	p := MustCompile("/files/*path")

	params, ok := p.Match("/files/a/b/c.txt")
	if !ok {
		t.Fatal("expected match")
	}
	if params["path"] != "a/b/c.txt" {
		t.Errorf("params[path] = %q, want %q", params["path"], "a/b/c.txt")
	}

	// Empty remainder still matches.
	params, ok = p.Match("/files")
	if !ok {
		t.Fatal("expected /files to match")
	}
	if params["path"] != "" {
		t.Errorf("params[path] = %q, want empty", params["path"])
	}
}

func TestBareWildcardMatchesEverything(t *testing.T) {
	p := MustCompile("*")

	for _, path := range []string{"/", "/a", "/a/b/c", "/does-not-exist"} {
		params, ok := p.Match(path)
		if !ok {
			t.Errorf("* should match %q", path)
		}
		if len(params) != 0 {
			t.Errorf("bare wildcard captured params %v for %q", params, path)
		}
	}
}

func TestLiteralRegexCharacters(t *testing.T) {
	// Regex metacharacters in literal segments match only themselves.
	p := MustCompile("/v1.0/docs")

	if _, ok := p.Match("/v1.0/docs"); !ok {
		t.Error("expected literal dot to match itself")
	}
	if _, ok := p.Match("/v1x0/docs"); ok {
		t.Error("literal dot must not act as a regex wildcard")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"empty template", ""},
		{"empty param name", "/users/:"},
		{"duplicate param", "/a/:id/b/:id"},
		{"interior wildcard", "/a/*rest/b"},
		{"duplicate wildcard name", "/:x/*x"},
		{"empty segment", "/a//b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.template)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.template)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want *CompileError", err)
			}
		})
	}
}

func TestParamNamesDeclarationOrder(t *testing.T) {
	p := MustCompile("/a/:first/b/:second/*rest")

	names := p.ParamNames()
	want := []string{"first", "second", "rest"}
	if len(names) != len(want) {
		t.Fatalf("ParamNames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ParamNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSubstitutionRoundTrip(t *testing.T) {
	// Substituting arbitrary non-slash values for each parameter and
	// matching the produced path returns exactly those values.
	values := [][2]string{
		{"id", "42"},
		{"id", "abc-def"},
		{"id", "x%20y"},
	}

	p := MustCompile("/items/:id")
	for _, kv := range values {
		path := "/items/" + kv[1]
		params, ok := p.Match(path)
		if !ok {
			t.Fatalf("expected %q to match", path)
		}
		if params[kv[0]] != kv[1] {
			t.Errorf("params[%q] = %q, want %q", kv[0], params[kv[0]], kv[1])
		}
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on a malformed template")
		}
	}()
	MustCompile("/a/*rest/b")
}
