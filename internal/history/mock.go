package history

import (
	"sync"

	"github.com/quarterline/arcade-circuit/internal/models"
)

// Mock is a test double for the history Manager. Archive bookkeeping is
// synchronized because the monitor archives from its own goroutines.
type Mock struct {
	QueryFunc     func(opts QueryOptions) []models.Tournament
	ArchiveReturn ArchiveResult
	ImportReturn  bool
	ExportReturn  []byte

	mu           sync.Mutex
	archiveCalls []int
}

var _ Manager = (*Mock)(nil)

// NewMock creates a new mock history manager.
func NewMock() *Mock {
	return &Mock{ImportReturn: true}
}

func (m *Mock) Query(opts QueryOptions) []models.Tournament {
	if m.QueryFunc != nil {
		return m.QueryFunc(opts)
	}
	return nil
}

func (m *Mock) PlayerStats(playerID string) *PlayerStats {
	return &PlayerStats{PlayerID: playerID, Trend: TrendInsufficient, InsufficientData: true, PerGame: map[string]GameBreakdown{}}
}

func (m *Mock) GameAnalytics(gameID string) *GameAnalytics {
	return &GameAnalytics{GameID: gameID, Difficulty: difficultyNeutral}
}

func (m *Mock) ComparativeAnalytics() *CrossGameReport {
	return &CrossGameReport{}
}

func (m *Mock) Archive(retainDays int) ArchiveResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archiveCalls = append(m.archiveCalls, retainDays)
	return m.ArchiveReturn
}

// ArchiveCalls returns the retainDays of every Archive call so far.
func (m *Mock) ArchiveCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.archiveCalls...)
}

func (m *Mock) ExportAll(opts QueryOptions) ([]byte, error) {
	if m.ExportReturn != nil {
		return m.ExportReturn, nil
	}
	return []byte(`{"tournaments":[],"metadata":{},"analytics":{}}`), nil
}

func (m *Mock) ImportAll(data []byte) bool {
	return m.ImportReturn
}

func (m *Mock) Close() {}
