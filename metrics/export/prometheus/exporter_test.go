package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authkit "github.com/coursia/authkit"
)

type fakeSource struct {
	snapshot authkit.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() authkit.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                     { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters:   map[authkit.MetricID]uint64{},
			Histograms: map[authkit.MetricID][]uint64{},
		},
		dropped: 0,
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters: map[authkit.MetricID]uint64{
				authkit.MetricLoginSuccess: 7,
			},
			Histograms: map[authkit.MetricID][]uint64{
				authkit.MetricTokenValidateLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "authkit_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "authkit_token_validate_latency_seconds_bucket{le=\"0.005\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "authkit_token_validate_latency_seconds_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected +Inf cumulative bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "authkit_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters:   map[authkit.MetricID]uint64{authkit.MetricLoginSuccess: 1},
			Histograms: map[authkit.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters: map[authkit.MetricID]uint64{
				authkit.MetricLoginSuccess:            1000,
				authkit.MetricLoginFailure:            40,
				authkit.MetricRegisterSuccess:         800,
				authkit.MetricRegisterDuplicate:       10,
				authkit.MetricProviderSignInSuccess:   600,
				authkit.MetricProviderSignInCancelled: 20,
				authkit.MetricLogout:                  500,
			},
			Histograms: map[authkit.MetricID][]uint64{
				authkit.MetricTokenValidateLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
		dropped: 0,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
