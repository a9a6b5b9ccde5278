package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tunekit/trialkeeper/internal/metrics"
)

func TestRegistryExposesMetrics(t *testing.T) {
	metrics.EmitBuildInfo()
	metrics.ObserveLaunch("posix")
	metrics.ObserveKill()
	metrics.ObserveProbeDuration(25 * time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("unexpected status code from metrics handler: %d", rec.Code)
	}

	body := rec.Body.String()
	for _, fragment := range []string{
		`trialkeeper_trial_launches_total{platform="posix"}`,
		"trialkeeper_trial_kills_total",
		"trialkeeper_probe_duration_seconds",
		"trialkeeper_build_info{",
		"go_version=",
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in metrics body:\n%s", fragment, body)
		}
	}
}

func TestObserveLaunchDefaultsPlatformLabel(t *testing.T) {
	metrics.ObserveLaunch("")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `trialkeeper_trial_launches_total{platform="unknown"}`) {
		t.Fatalf("empty platform should fall back to the unknown label:\n%s", rec.Body.String())
	}
}
