package middleware

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wayfinder-dev/wayfinder/pkg/navtest"
	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// counterValue reads a counter sample for the given label pairs out of the
// registry, or 0 when the sample does not exist.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestPrometheusRecordsSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := navtest.NewRecorder()
	r, _ := navtest.NewRouter("/")

	r.Use(Prometheus(WithRegistry(reg)))
	r.Handle("/users/:id", rec.Handler("user"))

	if err := r.Navigate("/users/5"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	// Labels carry the route template, not the concrete path.
	labels := map[string]string{"route": "/users/:id", "status": "success"}
	if got := counterValue(t, reg, "wayfinder_navigations_total", labels); got != 1 {
		t.Errorf("navigations_total(success) = %v, want 1", got)
	}
	if got := histogramCount(t, reg, "wayfinder_navigation_duration_seconds", map[string]string{"route": "/users/:id"}); got != 1 {
		t.Errorf("duration sample count = %v, want 1", got)
	}
}

func TestPrometheusRecordsError(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := navtest.NewRecorder()
	r, _ := navtest.NewRouter("/")

	boom := errors.New("boom")
	r.Use(Prometheus(WithRegistry(reg)))
	r.Handle("/x", rec.FailingHandler("x", boom))
	r.OnError(func(err *router.NavigationError) {})

	if err := r.Navigate("/x"); err == nil {
		t.Fatal("Navigate succeeded, want error")
	}

	if got := counterValue(t, reg, "wayfinder_navigations_total", map[string]string{"route": "/x", "status": "error"}); got != 1 {
		t.Errorf("navigations_total(error) = %v, want 1", got)
	}
	if got := counterValue(t, reg, "wayfinder_navigation_errors_total", map[string]string{"route": "/x", "error_type": "handler"}); got != 1 {
		t.Errorf("navigation_errors_total = %v, want 1", got)
	}
}

func TestPrometheusNamespaceOption(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := navtest.NewRecorder()
	r, _ := navtest.NewRouter("/")

	r.Use(Prometheus(WithRegistry(reg), WithNamespace("myapp"), WithSubsystem("nav")))
	r.Handle("/x", rec.Handler("x"))

	if err := r.Navigate("/x"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := counterValue(t, reg, "myapp_nav_navigations_total", map[string]string{"route": "/x", "status": "success"}); got != 1 {
		t.Errorf("namespaced counter = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	if got := categorizeError(&router.MiddlewareContractError{Index: 0}); got != "middleware_contract" {
		t.Errorf("categorizeError(contract) = %q", got)
	}
	if got := categorizeError(errors.New("x")); got != "handler" {
		t.Errorf("categorizeError(generic) = %q", got)
	}
}
