package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	TournamentsCreatedCount   int
	TournamentsCompletedCount int
	ScoresRecordedCount       int
	EventsPublishedByType     map[string]int
	OperationErrorsByOp       map[string]int
	OperationDurations        map[string][]float64
	QuotaPercent              float64
	ArchiveRunCount           int
	StartupSeconds            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		EventsPublishedByType: make(map[string]int),
		OperationErrorsByOp:   make(map[string]int),
		OperationDurations:    make(map[string][]float64),
	}
}

func (m *Mock) IncTournamentsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentsCreatedCount++
}

func (m *Mock) IncTournamentsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentsCompletedCount++
}

func (m *Mock) IncScoresRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresRecordedCount++
}

func (m *Mock) IncEventsPublished(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsPublishedByType[eventType]++
}

func (m *Mock) IncOperationErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OperationErrorsByOp[op]++
}

func (m *Mock) ObserveOperationDuration(op string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OperationDurations[op] = append(m.OperationDurations[op], seconds)
}

func (m *Mock) SetStorageQuotaPercent(percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuotaPercent = percent
}

func (m *Mock) IncArchiveRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArchiveRunCount++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupSeconds = seconds
}
