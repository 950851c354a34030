package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector holds the planner's prometheus metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	// Calculation metrics
	calculationsTotal   *prometheus.CounterVec
	calculationDuration *prometheus.HistogramVec
	insightsGenerated   *prometheus.CounterVec

	// Configuration metrics
	constantLookups *prometheus.CounterVec

	// Output metrics
	resultsWritten *prometheus.CounterVec
}

func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		logger:   logger,

		calculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outletplanner_calculations_total",
				Help: "Total number of calculations run",
			},
			[]string{"calculation", "status"},
		),
		calculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "outletplanner_calculation_duration_seconds",
				Help:    "Calculation duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"calculation"},
		),
		insightsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outletplanner_insights_generated_total",
				Help: "Insights, recommendations and opportunities generated",
			},
			[]string{"calculation"},
		),
		constantLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outletplanner_constant_lookups_total",
				Help: "Operational constant lookups by cache result",
			},
			[]string{"result"},
		),
		resultsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outletplanner_results_written_total",
				Help: "Result envelopes written to an output destination",
			},
			[]string{"destination", "status"},
		),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordCalculation counts one calculation and observes its duration.
func (c *Collector) RecordCalculation(calculation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.calculationsTotal.WithLabelValues(calculation, status).Inc()
	c.calculationDuration.WithLabelValues(calculation).Observe(duration.Seconds())
}

func (c *Collector) RecordInsights(calculation string, n int) {
	c.insightsGenerated.WithLabelValues(calculation).Add(float64(n))
}

func (c *Collector) RecordConstantLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.constantLookups.WithLabelValues(result).Inc()
}

func (c *Collector) RecordResultWritten(destination string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.resultsWritten.WithLabelValues(destination, status).Inc()
}

// WriteTextfile writes the registry in the text exposition format for a
// node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		c.logger.Error("failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
