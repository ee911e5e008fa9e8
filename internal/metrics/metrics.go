// Package metrics holds the bot's prometheus instrumentation.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the application metrics.
type Metrics struct {
	// Updates handled, by kind (command, text, document, callback).
	UpdatesTotal *prometheus.CounterVec

	// Downloads served through deep-link tokens.
	DownloadsTotal prometheus.Counter

	// Movies added through the upload dialogue.
	MoviesAddedTotal prometheus.Counter

	// Movie requests opened by users.
	RequestsOpenedTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	globalMetrics *Metrics
	metricsMutex  sync.Mutex
)

// New creates the metrics instance, registering every collector on a
// dedicated registry. Repeated calls return the same instance.
func New() *Metrics {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if globalMetrics != nil {
		return globalMetrics
	}

	m := &Metrics{
		UpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates handled",
		}, []string{"kind"}),
		DownloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_downloads_total",
			Help: "Total number of downloads served through deep links",
		}),
		MoviesAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_movies_added_total",
			Help: "Total number of movies added",
		}),
		RequestsOpenedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_requests_opened_total",
			Help: "Total number of movie requests opened",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.UpdatesTotal,
		m.DownloadsTotal,
		m.MoviesAddedTotal,
		m.RequestsOpenedTotal,
	)

	globalMetrics = m
	return m
}

// Handler returns the /metrics HTTP handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
