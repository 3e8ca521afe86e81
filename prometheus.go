package vec

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics recorded by instrumented vectors and
// stores.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the buffer allocations counter.
	Allocations prometheus.CounterOpts
	// Options for the allocated slots counter.
	AllocatedSlots prometheus.CounterOpts
	// Options for the counter of items transferred into new buffers.
	TransferredItems prometheus.CounterOpts
	// Options for the allocated capacity histogram.
	Capacity prometheus.HistogramOpts
	// Options for the out of range access counter.
	OutOfRange prometheus.CounterOpts
	// Options for the store operations counter.
	StoreOperations prometheus.CounterOpts
	// Options for the store retries counter.
	StoreRetries prometheus.CounterOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "vec"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Allocations: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocations",
			Help:      "Number of buffers allocated to grow vectors",
		},
		AllocatedSlots: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocated_slots",
			Help:      "Number of slots in buffers allocated to grow vectors",
		},
		TransferredItems: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transferred_items",
			Help:      "Number of items transferred into newly allocated buffers",
		},
		Capacity: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "capacity",
			Help:      "Capacity of newly allocated buffers",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 20),
		},
		OutOfRange: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "out_of_range",
			Help:      "Number of checked accesses with an index out of range",
		},
		StoreOperations: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "store_operations",
			Help:      "Number of snapshots saved, loaded and deleted by stores",
		},
		StoreRetries: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "store_retries",
			Help:      "Number of store operations retried because SQLite was busy",
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// Metrics creates the collectors and registers them with the registerer of the config.
//
// Call it once per registerer: registering the same collectors twice panics.
func (c *PrometheusConfig) Metrics() *Metrics {
	m := Metrics{
		allocations:      prometheus.NewCounterVec(c.Allocations, []string{"operation"}),
		allocatedSlots:   prometheus.NewCounterVec(c.AllocatedSlots, []string{"operation"}),
		transferredItems: prometheus.NewCounterVec(c.TransferredItems, []string{"operation"}),
		capacity:         prometheus.NewHistogram(c.Capacity),
		outOfRange:       prometheus.NewCounter(c.OutOfRange),
		storeOperations:  prometheus.NewCounterVec(c.StoreOperations, []string{"operation"}),
		storeRetries:     prometheus.NewCounter(c.StoreRetries),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.allocations,
			m.allocatedSlots,
			m.transferredItems,
			m.capacity,
			m.outOfRange,
			m.storeOperations,
			m.storeRetries,
		)
	}

	return &m
}
