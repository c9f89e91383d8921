package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the service. Each collector
// owns its registry; nothing is registered globally.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Planner metrics
	Commands     *prometheus.CounterVec
	SaveFailures *prometheus.CounterVec

	namespace string
}

// NewCollector creates and registers every metric under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	commands := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "planner_commands_total",
			Help:      "Total number of trip planner commands by outcome",
		},
		[]string{"command", "status"},
	)

	saveFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_save_failures_total",
			Help:      "Total number of snapshot saves that failed after a command",
		},
		[]string{"command"},
	)

	registry.MustRegister(httpRequests, httpDuration, commands, saveFailures)

	return &Collector{
		registry:     registry,
		HTTPRequests: httpRequests,
		HTTPDuration: httpDuration,
		Commands:     commands,
		SaveFailures: saveFailures,
		namespace:    namespace,
	}
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request. route is the matched
// mux pattern, never the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (c *Collector) CommandApplied(command string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Commands.WithLabelValues(command, status).Inc()
}

func (c *Collector) SnapshotSaveFailed(command string) {
	c.SaveFailures.WithLabelValues(command).Inc()
}

// TrackActiveTrips reports the number of trips held in memory, read from
// count at scrape time.
func (c *Collector) TrackActiveTrips(count func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      "active_trips",
			Help:      "Number of trip planners held in memory",
		},
		func() float64 { return float64(count()) },
	))
}
