package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineCollector bundles Prometheus metrics for the computation engines and
// provides a ready-made /metrics handler for callers that expose one.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	Evaluations *prometheus.CounterVec
	Durations   *prometheus.HistogramVec

	ConstellationSatellites prometheus.Gauge
	RevisitMaxCount         prometheus.Gauge
}

// NewEngineCollector registers engine Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
// Registration is idempotent: an already-registered collector of the same
// shape is reused.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_evaluations_total",
		Help: "Total number of engine evaluations, labeled by engine name.",
	}, []string{"engine"})
	evaluations, err := registerCounterVec(reg, evaluations, "engine_evaluations_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_evaluation_duration_seconds",
		Help:    "Engine evaluation latency in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"engine"})
	durations, err = registerHistogramVec(reg, durations, "engine_evaluation_duration_seconds")
	if err != nil {
		return nil, err
	}

	satellites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_satellites",
		Help: "Number of satellites in the most recent revisit analysis.",
	}), "constellation_satellites")
	if err != nil {
		return nil, err
	}
	revisitMax, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "revisit_grid_max_count",
		Help: "Maximum cell value of the most recent revisit grid.",
	}), "revisit_grid_max_count")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:                gatherer,
		Evaluations:             evaluations,
		Durations:               durations,
		ConstellationSatellites: satellites,
		RevisitMaxCount:         revisitMax,
	}, nil
}

// ObserveEvaluation records one completed evaluation of the named engine.
func (c *EngineCollector) ObserveEvaluation(engine string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Evaluations != nil {
		c.Evaluations.WithLabelValues(engine).Inc()
	}
	if c.Durations != nil {
		c.Durations.WithLabelValues(engine).Observe(elapsed.Seconds())
	}
}

// SetConstellationStats drives the analysis-scope gauges after a revisit run.
func (c *EngineCollector) SetConstellationStats(satellites, revisitMax int) {
	if c == nil {
		return
	}
	if c.ConstellationSatellites != nil {
		c.ConstellationSatellites.Set(float64(satellites))
	}
	if c.RevisitMaxCount != nil {
		c.RevisitMaxCount.Set(float64(revisitMax))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EngineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
