package ndlcore

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type clientMetrics struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndlcore",
			Subsystem: "client",
			Name:      "searches_total",
			Help:      "Total searches by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ndlcore",
			Subsystem: "client",
			Name:      "search_duration_seconds",
			Help:      "Search round-trip duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		records: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ndlcore",
			Subsystem: "client",
			Name:      "search_records",
			Help:      "Records returned per successful search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.searches); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.records); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector, or adopts the one already registered
// under the same name so several clients can share a registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("ndlcore: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("ndlcore: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records per-operation logs and metrics. A nil observer is a no-op.
type observer struct {
	logger  *zap.Logger
	metrics *clientMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	if o.logger == nil && o.metrics == nil {
		return nil, nil
	}
	return o, nil
}

func (o *observer) observe(op, query string, start time.Time, records int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.searches.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
		if err == nil {
			o.metrics.records.WithLabelValues(op).Observe(float64(records))
		}
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Debug("search failed",
			zap.String("op", op),
			zap.String("query", query),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("search completed",
		zap.String("op", op),
		zap.String("query", query),
		zap.Duration("duration", dur),
		zap.Int("records", records),
	)
}
