package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/signalsfoundry/eo-mission-engine/internal/observability"
)

func newTestEngine(t *testing.T) (*Engine, *observability.EngineCollector) {
	t.Helper()
	collector, err := observability.NewEngineCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewEngineCollector: %v", err)
	}
	return NewEngine(nil, collector), collector
}

func TestEngine_SensorGeometryMatchesPureFunction(t *testing.T) {
	engine, _ := newTestEngine(t)
	in := referenceSensor()

	got := engine.SensorGeometry(context.Background(), in)
	want := ComputeSensorGeometry(in)
	if got != want {
		t.Fatalf("instrumented result %+v differs from pure result %+v", got, want)
	}
}

func TestEngine_EvaluationsCounted(t *testing.T) {
	engine, collector := newTestEngine(t)
	ctx := context.Background()

	engine.SensorGeometry(ctx, referenceSensor())
	engine.SensorGeometry(ctx, referenceSensor())
	engine.MTF(ctx, referenceMTF())

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("sensor_geometry")); got != 2 {
		t.Fatalf("sensor_geometry evaluations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("mtf")); got != 1 {
		t.Fatalf("mtf evaluations = %v, want 1", got)
	}
}

func TestEngine_RevisitsSetsConstellationGauges(t *testing.T) {
	engine, collector := newTestEngine(t)
	sats := testConstellation()

	grid := engine.Revisits(context.Background(), sats, time.Unix(0, 0).UTC(), 6, 30)

	if got := testutil.ToFloat64(collector.ConstellationSatellites); got != float64(len(sats)) {
		t.Fatalf("constellation gauge = %v, want %d", got, len(sats))
	}
	if got := testutil.ToFloat64(collector.RevisitMaxCount); got != float64(grid.MaxCount) {
		t.Fatalf("revisit max gauge = %v, want %d", got, grid.MaxCount)
	}
}

func TestEngine_NilDependenciesTolerated(t *testing.T) {
	engine := NewEngine(nil, nil)
	ctx := context.Background()

	res := engine.SensorGeometry(ctx, referenceSensor())
	if res.Nominal.GroundPixelSizeM <= 0 {
		t.Fatalf("evaluation with nil dependencies returned %+v", res)
	}

	if _, err := engine.Kernel(ctx, KernelGaussian, KernelParams{Sigma: 1}); err != nil {
		t.Fatalf("Kernel: %v", err)
	}
	if _, err := engine.TLEGroundTrack(ctx, "bad", "bad", time.Now(), 1); err == nil {
		t.Fatalf("expected TLE validation error to propagate")
	}
}

func TestEngine_RestoreRoundTrip(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	kernel, err := engine.Kernel(ctx, KernelGaussian, KernelParams{Sigma: 1})
	if err != nil {
		t.Fatalf("Kernel: %v", err)
	}
	scene := testScene(12, 12)
	blurred := convolve(scene, kernel)
	restored := engine.Restore(ctx, blurred, kernel, 10)

	h, w := restored.Dims()
	if h != 12 || w != 12 {
		t.Fatalf("restored channel is %dx%d, want 12x12", h, w)
	}
}

func TestEngine_TLEGeodeticMatchesPureFunction(t *testing.T) {
	engine, _ := newTestEngine(t)
	e := circularElements(7000, 51.6)

	got := engine.TLEGeodetic(context.Background(), e)
	want := TLEToGeodetic(e)
	if got != want {
		t.Fatalf("instrumented result %+v differs from pure result %+v", got, want)
	}
}
