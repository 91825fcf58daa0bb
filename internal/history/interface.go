package history

import "github.com/quarterline/arcade-circuit/internal/models"

// Manager is the read-projection over completed tournaments: querying,
// derived statistics, archiving, and export/import. It never mutates live
// tournaments; the store is its single source of truth and its in-memory
// cache is strictly read-through.
type Manager interface {
	Query(opts QueryOptions) []models.Tournament
	PlayerStats(playerID string) *PlayerStats
	GameAnalytics(gameID string) *GameAnalytics
	ComparativeAnalytics() *CrossGameReport

	// Archive evicts completed tournaments older than retainDays from the
	// active record and ledger. Archived data stays available in exports
	// taken beforehand; this is cache eviction, not data loss.
	Archive(retainDays int) ArchiveResult

	ExportAll(opts QueryOptions) ([]byte, error)
	// ImportAll accepts exactly the export document shape. Import is
	// idempotent per tournament id.
	ImportAll(data []byte) bool

	Close()
}
