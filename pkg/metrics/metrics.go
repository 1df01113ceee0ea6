package metrics

// Counters mirroring the lifecycle hooks the session store exposes.
// Attribute mutations are labelled by operation so dashboards can tell
// writes, updates and removals apart.

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wicker_sessions_created_total",
		Help: "Total number of sessions lazily created by the store",
	})

	SessionsInvalidated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wicker_sessions_invalidated_total",
		Help: "Total number of sessions explicitly invalidated",
	})

	SessionsUnbound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wicker_sessions_unbound_total",
		Help: "Total number of unbind notifications delivered",
	})

	LiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wicker_live_sessions",
		Help: "Number of session wrappers currently held in the store",
	})

	AttributeOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wicker_session_attribute_ops_total",
		Help: "Session attribute mutations by operation",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(
		SessionsCreated,
		SessionsInvalidated,
		SessionsUnbound,
		LiveSessions,
		AttributeOps,
	)
}

/*
Handler returns the HTTP handler serving the default Prometheus registry.
*/
func Handler() http.Handler {
	return promhttp.Handler()
}
