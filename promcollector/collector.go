package promcollector

import (
	"time"

	"github.com/hupe1980/attrcodec"
	"github.com/prometheus/client_golang/prometheus"
)

var _ attrcodec.MetricsCollector = (*Collector)(nil)

// Collector implements attrcodec.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	bytes     *prometheus.CounterVec
	files     prometheus.Counter
	rowIDs    prometheus.Counter
}

// Option configures a Collector.
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. The default is "attrcodec".
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithBuckets sets the latency histogram buckets in seconds.
func WithBuckets(buckets []float64) Option {
	return func(c *config) {
		c.buckets = buckets
	}
}

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...Option) (*Collector, error) {
	cfg := config{
		namespace: "attrcodec",
		buckets:   prometheus.DefBuckets,
	}
	for _, fn := range optFns {
		fn(&cfg)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of codec operations",
			Buckets:   cfg.buckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "operations_total",
			Help:      "Total codec operations",
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "payload_bytes_total",
			Help:      "Payload bytes moved by successful operations",
		}, []string{"op"}),
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "attribute_files_written_total",
			Help:      "Attribute files written",
		}),
		rowIDs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "row_ids_read_total",
			Help:      "Row identifiers decoded by ReadRowIDs",
		}),
	}

	for _, col := range []prometheus.Collector{c.opLatency, c.ops, c.bytes, c.files, c.rowIDs} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(reg prometheus.Registerer, optFns ...Option) *Collector {
	c, err := New(reg, optFns...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) observe(op string, d time.Duration, err error) bool {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
	return err == nil
}

// RecordReadAll implements attrcodec.MetricsCollector.
func (c *Collector) RecordReadAll(_ int, nbytes int64, d time.Duration, err error) {
	if c.observe("read_all", d, err) {
		c.bytes.WithLabelValues("read_all").Add(float64(nbytes))
	}
}

// RecordWriteAll implements attrcodec.MetricsCollector.
// Files written before a failure are still counted.
func (c *Collector) RecordWriteAll(attrs int, nbytes int64, d time.Duration, err error) {
	c.files.Add(float64(attrs))
	if c.observe("write_all", d, err) {
		c.bytes.WithLabelValues("write_all").Add(float64(nbytes))
	}
}

// RecordReadRowIDs implements attrcodec.MetricsCollector.
func (c *Collector) RecordReadRowIDs(rowIDs int, d time.Duration, err error) {
	if c.observe("read_row_ids", d, err) {
		c.rowIDs.Add(float64(rowIDs))
	}
}

// RecordReadRange implements attrcodec.MetricsCollector.
func (c *Collector) RecordReadRange(nbytes int64, d time.Duration, err error) {
	if c.observe("read_range", d, err) {
		c.bytes.WithLabelValues("read_range").Add(float64(nbytes))
	}
}
