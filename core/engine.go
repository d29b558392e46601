package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/eo-mission-engine/internal/logging"
	"github.com/signalsfoundry/eo-mission-engine/internal/observability"
	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Engine wraps the pure computation entry points with caller-injected
// observability: structured logging, Prometheus evaluation metrics, and an
// OpenTelemetry span per evaluation. The pure functions stay side-effect
// free; all instrumentation lives here.
type Engine struct {
	log     logging.Logger
	metrics *observability.EngineCollector
	tracer  trace.Tracer
}

// NewEngine builds an Engine. Both dependencies are optional: a nil logger
// falls back to a noop logger and a nil collector disables metrics.
func NewEngine(log logging.Logger, metrics *observability.EngineCollector) *Engine {
	if log == nil {
		log = logging.Noop()
	}
	return &Engine{
		log:     log,
		metrics: metrics,
		tracer:  otel.Tracer("eo-mission-engine/core"),
	}
}

// SensorGeometry evaluates the sensor geometry engine.
func (e *Engine) SensorGeometry(ctx context.Context, in model.SensorInputs) model.CalculationResults {
	ctx, done := e.begin(ctx, "sensor_geometry")
	defer done()

	res := ComputeSensorGeometry(in)
	e.log.Debug(ctx, "sensor geometry evaluated",
		logging.Float64("nominal_gsd_m", res.Nominal.GroundPixelSizeM),
		logging.Float64("worst_case_gsd_m", res.WorstCase.GroundPixelSizeM),
	)
	return res
}

// PSF evaluates the point-spread-function engine.
func (e *Engine) PSF(ctx context.Context, in model.PSFInputs) model.PSFResults {
	ctx, done := e.begin(ctx, "psf")
	defer done()

	res := ComputePSF(in)
	e.log.Debug(ctx, "psf evaluated",
		logging.Float64("total_fwhm_um", res.TotalFWHMUm),
		logging.Float64("strehl", res.StrehlRatio),
	)
	return res
}

// MTF evaluates the modulation-transfer-function engine.
func (e *Engine) MTF(ctx context.Context, in model.MTFInputs) model.MTFResults {
	ctx, done := e.begin(ctx, "mtf")
	defer done()

	res := ComputeMTF(in)
	e.log.Debug(ctx, "mtf evaluated",
		logging.Float64("mtf50_cycles_per_mm", res.MTF50CyclesPerMm),
		logging.Float64("sampling_efficiency", res.SamplingEfficiency),
	)
	return res
}

// GroundTrack evaluates the circular-orbit propagator.
func (e *Engine) GroundTrack(ctx context.Context, elements model.OrbitalElements, start time.Time, timeSpanHours float64) []model.GroundTrackPoint {
	ctx, done := e.begin(ctx, "orbit_propagation")
	defer done()

	track := PropagateOrbitFrom(elements, start, timeSpanHours)
	e.log.Debug(ctx, "ground track propagated",
		logging.Int("samples", len(track)),
		logging.Float64("span_hours", timeSpanHours),
	)
	return track
}

// TLEGroundTrack evaluates the SGP4 propagator from raw TLE lines.
func (e *Engine) TLEGroundTrack(ctx context.Context, line1, line2 string, start time.Time, timeSpanHours float64) ([]model.GroundTrackPoint, error) {
	ctx, done := e.begin(ctx, "sgp4_propagation")
	defer done()

	track, err := PropagateTLE(line1, line2, start, timeSpanHours)
	if err != nil {
		e.log.Warn(ctx, "sgp4 propagation failed", logging.String("error", err.Error()))
		return nil, err
	}
	e.log.Debug(ctx, "sgp4 ground track propagated", logging.Int("samples", len(track)))
	return track, nil
}

// Revisits evaluates the revisit coverage accumulator and drives the
// constellation gauges.
func (e *Engine) Revisits(ctx context.Context, sats []model.Satellite, start time.Time, timeSpanHours float64, gridResolution int) model.RevisitGrid {
	ctx, done := e.begin(ctx, "revisit_accumulation")
	defer done()

	grid := AccumulateRevisitsFrom(sats, start, timeSpanHours, gridResolution)
	e.metrics.SetConstellationStats(len(sats), grid.MaxCount)
	e.log.Debug(ctx, "revisit grid accumulated",
		logging.Int("satellites", len(sats)),
		logging.Int("max_count", grid.MaxCount),
	)
	return grid
}

// TLEGeodetic evaluates the TLE-to-geodetic converter.
func (e *Engine) TLEGeodetic(ctx context.Context, elements model.TLEElements) model.GeodeticPosition {
	ctx, done := e.begin(ctx, "tle_geodetic")
	defer done()

	pos := TLEToGeodetic(elements)
	e.log.Debug(ctx, "tle converted to geodetic",
		logging.Float64("lat_deg", pos.LatitudeDeg),
		logging.Float64("lon_deg", pos.LongitudeDeg),
		logging.Float64("alt_km", pos.AltitudeKm),
	)
	return pos
}

// Kernel evaluates PSF kernel synthesis.
func (e *Engine) Kernel(ctx context.Context, kind KernelType, params KernelParams) (model.Kernel, error) {
	ctx, done := e.begin(ctx, "kernel_estimation")
	defer done()

	k, err := EstimateKernel(kind, params)
	if err != nil {
		e.log.Warn(ctx, "kernel estimation failed", logging.String("error", err.Error()))
		return model.Kernel{}, err
	}
	e.log.Debug(ctx, "kernel estimated",
		logging.String("type", string(kind)),
		logging.Int("size", k.Size),
	)
	return k, nil
}

// Restore evaluates Richardson-Lucy deconvolution of one channel.
func (e *Engine) Restore(ctx context.Context, observed model.Channel, kernel model.Kernel, iterations int) model.Channel {
	ctx, done := e.begin(ctx, "deconvolution")
	defer done()

	restored := Deconvolve(observed, kernel, iterations)
	e.log.Debug(ctx, "channel deconvolved", logging.Int("iterations", iterations))
	return restored
}

// begin opens a span and a timer for one evaluation; the returned func closes
// both and records the metric sample.
func (e *Engine) begin(ctx context.Context, engine string) (context.Context, func()) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, engine,
		trace.WithAttributes(attribute.String("engine", engine)))
	return ctx, func() {
		span.End()
		e.metrics.ObserveEvaluation(engine, time.Since(start))
	}
}
