package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/wayfinder-dev/wayfinder/pkg/navtest"
	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

func TestLoggingSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := navtest.NewRecorder()
	r, _ := navtest.NewRouter("/")
	r.Use(Logging(logger))
	r.Handle("/users/:id", rec.Handler("user"))

	if err := r.Navigate("/users/5"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("log output missing INFO record: %q", out)
	}
	if !strings.Contains(out, "path=/users/5") {
		t.Errorf("log output missing concrete path: %q", out)
	}
	if !strings.Contains(out, "route=/users/:id") {
		t.Errorf("log output missing route template: %q", out)
	}
}

func TestLoggingFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := navtest.NewRecorder()
	r, _ := navtest.NewRouter("/")
	r.Use(Logging(logger))
	r.Handle("/x", rec.FailingHandler("x", errors.New("boom")))
	r.OnError(func(err *router.NavigationError) {})

	if err := r.Navigate("/x"); err == nil {
		t.Fatal("Navigate succeeded, want error")
	}

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("log output missing ERROR record: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("log output missing error value: %q", out)
	}
}
