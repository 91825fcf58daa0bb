package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TournamentsCreated   prometheus.Counter
	TournamentsCompleted prometheus.Counter
	ScoresRecorded       prometheus.Counter
	EventsPublished      *prometheus.CounterVec
	OperationErrors      *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	StorageQuotaPercent  prometheus.Gauge
	ArchiveRuns          prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
