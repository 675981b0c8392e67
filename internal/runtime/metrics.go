package runtime

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "whisperd",
		Subsystem: "runtime",
		Name:      "model_loads_total",
		Help:      "Total successful model loads",
	})

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "whisperd",
		Subsystem: "runtime",
		Name:      "cache_hits_total",
		Help:      "Total cache lookups served without loading",
	})
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, cacheHitsTotal)
}
