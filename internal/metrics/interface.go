package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTournamentsCreated()
	IncTournamentsCompleted()
	IncScoresRecorded()
	IncEventsPublished(eventType string)
	IncOperationErrors(op string)
	ObserveOperationDuration(op string, seconds float64)
	SetStorageQuotaPercent(percent float64)
	IncArchiveRuns()
	SetStartupTime(seconds float64)
}
