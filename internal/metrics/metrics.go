// Package metrics counts store, validation, and domain events on a private
// Prometheus registry. A CLI run can dump the registry to a node-exporter
// textfile; nothing is served over the network.
//
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

const namespace = "frontdesk"

// Store operation labels.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Record change labels.
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// Rejection reasons.
const (
	ReasonRoomReserved = "room_reserved"
	ReasonDuplicate    = "duplicate"
	ReasonNotFound     = "not_found"
)

// Recorder holds the collectors for one process.
type Recorder struct {
	registry    *prometheus.Registry
	storeOps    *prometheus.CounterVec
	rows        *prometheus.GaugeVec
	validations *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	changes     *prometheus.CounterVec
}

// New creates a Recorder with its collectors registered on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Database file loads and saves by result.",
		}, []string{"op", "result"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "rows",
			Help:      "Rows per table at the last load or save, deleted rows included.",
		}, []string{"table"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "failures_total",
			Help:      "Failed rule evaluations by table.",
		}, []string{"table"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "rejections_total",
			Help:      "Operations refused by a domain rule.",
		}, []string{"reason"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "changes_total",
			Help:      "Persisted record changes by table and kind.",
		}, []string{"table", "change"}),
	}
	r.registry.MustRegister(r.storeOps, r.rows, r.validations, r.rejections, r.changes)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// StoreOp counts a load or save and its outcome.
func (r *Recorder) StoreOp(op string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.storeOps.WithLabelValues(op, result).Inc()
}

// TableRows sets the row gauges from a database snapshot.
func (r *Recorder) TableRows(db *types.Database) {
	if r == nil || db == nil {
		return
	}
	for _, name := range types.StandardTableNames {
		r.rows.WithLabelValues(name).Set(float64(len(db.Rows(name))))
	}
}

// ValidationFailed adds n failed rules for table.
func (r *Recorder) ValidationFailed(table string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.validations.WithLabelValues(table).Add(float64(n))
}

// Rejected counts an operation refused for reason.
func (r *Recorder) Rejected(reason string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(reason).Inc()
}

// RecordChanged counts a persisted create, update, or delete.
func (r *Recorder) RecordChanged(table, change string) {
	if r == nil {
		return
	}
	r.changes.WithLabelValues(table, change).Inc()
}

// WriteTextfile writes the registry in the text exposition format to path,
// replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
