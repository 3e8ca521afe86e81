package vec

import (
	"github.com/prometheus/client_golang/prometheus"
)

type operation = string

const (
	opReserve  operation = "reserve"
	opResize   operation = "resize"
	opPushBack operation = "push_back"
	opInsert   operation = "insert"
	opClone    operation = "clone"

	opSave   operation = "save"
	opLoad   operation = "load"
	opDelete operation = "delete"
)

// Metrics holds the Prometheus collectors shared by instrumented vectors and stores. It is safe
// for concurrent use.
//
// An instance can be created only by [PrometheusConfig.Metrics]. A nil *Metrics records nothing.
type Metrics struct {
	allocations      *prometheus.CounterVec
	allocatedSlots   *prometheus.CounterVec
	transferredItems *prometheus.CounterVec
	capacity         prometheus.Histogram
	outOfRange       prometheus.Counter
	storeOperations  *prometheus.CounterVec
	storeRetries     prometheus.Counter
}

func (m *Metrics) relocated(op operation, capacity, items int) {
	if m == nil {
		return
	}
	m.allocations.WithLabelValues(op).Inc()
	m.allocatedSlots.WithLabelValues(op).Add(float64(capacity))
	m.transferredItems.WithLabelValues(op).Add(float64(items))
	m.capacity.Observe(float64(capacity))
}

func (m *Metrics) rangeError() {
	if m == nil {
		return
	}
	m.outOfRange.Inc()
}

func (m *Metrics) stored(op operation, snapshots int) {
	if m == nil {
		return
	}
	m.storeOperations.WithLabelValues(op).Add(float64(snapshots))
}

func (m *Metrics) retried() {
	if m == nil {
		return
	}
	m.storeRetries.Inc()
}
