package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_lifecycle_transitions_total",
			Help: "Order lifecycle transitions by kind",
		},
		[]string{"transition"}, // created|sent|delivered
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|expired|invalidated|invalidate_failed
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of keys currently in cache",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(LifecycleTransitions, CacheOps, CacheSize)
}
