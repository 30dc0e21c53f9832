package ingest

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mlwelles/moviegraph/movies"
)

const namespace = "moviegraph"

// Metrics counts ingestion progress.
type Metrics struct {
	moviesIngested prometheus.Counter
	links          *prometheus.CounterVec
	creditsMissing prometheus.Counter
	parseFallbacks *prometheus.CounterVec
}

// NewMetrics creates the ingestion counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		moviesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movies_ingested_total",
			Help:      "Movie rows merged into the graph store.",
		}),
		links: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Relationships merged, by relationship type.",
		}, []string{"rel"}),
		creditsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_missing_total",
			Help:      "Movies without a credits row.",
		}),
		parseFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_fallbacks_total",
			Help:      "Encoded list fields replaced by an empty list, by column.",
		}, []string{"field"}),
	}
	if reg != nil {
		reg.MustRegister(m.moviesIngested, m.links, m.creditsMissing, m.parseFallbacks)
	}
	return m
}

func (m *Metrics) movie(genres int) {
	m.moviesIngested.Inc()
	m.links.WithLabelValues(movies.RelHasGenre).Add(float64(genres))
}

func (m *Metrics) credits(actors, directors int) {
	m.links.WithLabelValues(movies.RelActedIn).Add(float64(actors))
	m.links.WithLabelValues(movies.RelDirected).Add(float64(directors))
}

func (m *Metrics) missingCredits() { m.creditsMissing.Inc() }

func (m *Metrics) fallback(field string) { m.parseFallbacks.WithLabelValues(field).Inc() }
