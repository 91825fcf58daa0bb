package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_tournaments_created_total",
			Help: "The total number of tournaments created.",
		}),
		TournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_tournaments_completed_total",
			Help: "The total number of tournaments completed.",
		}),
		ScoresRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_scores_recorded_total",
			Help: "The total number of game scores recorded.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_events_published_total",
			Help: "The total number of lifecycle events published, by type.",
		}, []string{"type"}),
		OperationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_operation_errors_total",
			Help: "The total number of failed engine operations, by operation.",
		}, []string{"op"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcade_operation_duration_seconds",
			Help:    "The duration of individual engine operations.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"op"}),
		StorageQuotaPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_storage_quota_percent",
			Help: "The percentage of the storage quota currently in use.",
		}),
		ArchiveRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_archive_runs_total",
			Help: "The total number of history archive sweeps performed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentsCreated,
		s.TournamentsCompleted,
		s.ScoresRecorded,
		s.EventsPublished,
		s.OperationErrors,
		s.OperationDuration,
		s.StorageQuotaPercent,
		s.ArchiveRuns,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTournamentsCreated() {
	s.TournamentsCreated.Inc()
}

func (s *Service) IncTournamentsCompleted() {
	s.TournamentsCompleted.Inc()
}

func (s *Service) IncScoresRecorded() {
	s.ScoresRecorded.Inc()
}

func (s *Service) IncEventsPublished(eventType string) {
	s.EventsPublished.WithLabelValues(eventType).Inc()
}

func (s *Service) IncOperationErrors(op string) {
	s.OperationErrors.WithLabelValues(op).Inc()
}

func (s *Service) ObserveOperationDuration(op string, seconds float64) {
	s.OperationDuration.WithLabelValues(op).Observe(seconds)
}

func (s *Service) SetStorageQuotaPercent(percent float64) {
	s.StorageQuotaPercent.Set(percent)
}

func (s *Service) IncArchiveRuns() {
	s.ArchiveRuns.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
