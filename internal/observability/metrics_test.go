package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveEvaluationRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEngineCollector(reg)
	if err != nil {
		t.Fatalf("NewEngineCollector: %v", err)
	}

	collector.ObserveEvaluation("sensor_geometry", 3*time.Millisecond)
	collector.ObserveEvaluation("sensor_geometry", 5*time.Millisecond)
	collector.ObserveEvaluation("mtf", time.Millisecond)

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("sensor_geometry")); got != 2 {
		t.Fatalf("engine_evaluations_total{engine=sensor_geometry} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("mtf")); got != 1 {
		t.Fatalf("engine_evaluations_total{engine=mtf} = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "engine_evaluation_duration_seconds", map[string]string{
		"engine": "sensor_geometry",
	}); count != 2 {
		t.Fatalf("engine_evaluation_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestNewEngineCollectorIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewEngineCollector(reg)
	if err != nil {
		t.Fatalf("first NewEngineCollector: %v", err)
	}
	second, err := NewEngineCollector(reg)
	if err != nil {
		t.Fatalf("second NewEngineCollector: %v", err)
	}

	// Both collectors observe into the same registered series.
	first.ObserveEvaluation("psf", time.Millisecond)
	second.ObserveEvaluation("psf", time.Millisecond)
	if got := testutil.ToFloat64(first.Evaluations.WithLabelValues("psf")); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *EngineCollector
	c.ObserveEvaluation("psf", time.Millisecond)
	c.SetConstellationStats(3, 7)
}

func TestMetricsHandlerExposesConstellationGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEngineCollector(reg)
	if err != nil {
		t.Fatalf("NewEngineCollector: %v", err)
	}
	collector.SetConstellationStats(4, 11)
	collector.ObserveEvaluation("revisit_accumulation", 2*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"engine_evaluations_total",
		"engine_evaluation_duration_seconds",
		"constellation_satellites",
		"revisit_grid_max_count",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
	if !strings.Contains(body, "constellation_satellites 4") {
		t.Fatalf("/metrics output missing satellite gauge value: %s", body)
	}
	if !strings.Contains(body, "revisit_grid_max_count 11") {
		t.Fatalf("/metrics output missing revisit gauge value: %s", body)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
