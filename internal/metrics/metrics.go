// Package metrics exposes store contents and mutation counts as Prometheus
// metrics.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/pkg/types"
)

const namespace = "crm"

// StatsSource is anything that can report store statistics.
type StatsSource interface {
	Stats() memory.Stats
}

// StoreCollector reads store statistics at scrape time.
type StoreCollector struct {
	src       StatsSource
	entities  *prometheus.Desc
	relations *prometheus.Desc
}

// NewCollector returns a collector over src.
func NewCollector(src StatsSource) *StoreCollector {
	return &StoreCollector{
		src: src,
		entities: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "entities"),
			"Number of records per entity type.",
			[]string{"entity"}, nil,
		),
		relations: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "edges"),
			"Relationship entries per relation. One relations count linked owners.",
			[]string{"owner", "relation"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entities
	ch <- c.relations
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()
	for _, et := range types.EntityTypes {
		ch <- prometheus.MustNewConstMetric(c.entities, prometheus.GaugeValue, float64(st.Entities[et]), string(et))
	}
	for key, n := range st.Relations {
		ch <- prometheus.MustNewConstMetric(c.relations, prometheus.GaugeValue, float64(n), string(key.Owner), key.Name)
	}
}

// Recorder counts store mutations. It implements memory.Observer.
type Recorder struct {
	ops *prometheus.CounterVec
}

// NewRecorder returns a recorder with its counter unregistered.
func NewRecorder() *Recorder {
	return &Recorder{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store mutations by operation and entity type.",
		}, []string{"op", "entity"}),
	}
}

// Observe implements memory.Observer.
func (r *Recorder) Observe(op memory.Op, t types.EntityType) {
	r.ops.WithLabelValues(string(op), string(t)).Inc()
}

// Reset drops every count, for example after a bulk load whose creates
// should not be reported.
func (r *Recorder) Reset() { r.ops.Reset() }

// Collector returns the underlying counter for registration.
func (r *Recorder) Collector() prometheus.Collector { return r.ops }

// NewRegistry returns a registry holding the store collector and, if rec is
// not nil, the recorder's counter.
func NewRegistry(src StatsSource, rec *Recorder) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(src)); err != nil {
		return nil, fmt.Errorf("registering store collector: %w", err)
	}
	if rec != nil {
		if err := reg.Register(rec.Collector()); err != nil {
			return nil, fmt.Errorf("registering operation counter: %w", err)
		}
	}
	return reg, nil
}

// WriteText gathers g and writes it in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
