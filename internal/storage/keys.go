package storage

// Namespaced keys for the engine's logical records. The tournament manager
// and the history manager both treat these as the single source of truth.
const (
	// KeyTournaments holds the full id->tournament map as one record.
	KeyTournaments = "arcade:tournaments"
	// KeyLedger holds the completed-tournament ledger and its counters.
	KeyLedger = "arcade:history:ledger"
	// KeyCachePrefix namespaces ad-hoc cached blobs.
	KeyCachePrefix = "arcade:cache:"
)
