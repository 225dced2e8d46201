package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg)

	m.OnBuildComplete(ctx, "hypercube", 16, 32, time.Millisecond, nil)
	m.OnBuildComplete(ctx, "hypercube", 0, 0, time.Millisecond, errors.New("short"))
	m.OnAnalyzeComplete(ctx, 16, time.Millisecond, nil)
	m.OnCacheMiss(ctx, "analysis")
	m.OnCacheSet(ctx, "analysis", 128)
	m.OnCacheHit(ctx, "analysis")
	m.OnResponse(ctx, "GET", "/v1/hypercube", 200, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"build ok", m.stageTotal.WithLabelValues("build", "hypercube", "ok"), 1},
		{"build error", m.stageTotal.WithLabelValues("build", "hypercube", "error"), 1},
		{"analyze ok", m.stageTotal.WithLabelValues("analyze", "", "ok"), 1},
		{"cache hit", m.cacheEvents.WithLabelValues("analysis", "hit"), 1},
		{"cache miss", m.cacheEvents.WithLabelValues("analysis", "miss"), 1},
		{"cache bytes", m.cacheBytes.WithLabelValues("analysis"), 128},
		{"http 200", m.httpRequests.WithLabelValues("GET", "/v1/hypercube", "200"), 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(m.latticeSites); n != 1 {
		t.Errorf("lattice sites histogram series = %d, want 1", n)
	}
}

func TestNewPrometheusTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering the same metrics twice should panic")
		}
	}()
	NewPrometheus(reg)
}
