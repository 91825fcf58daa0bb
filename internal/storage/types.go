package storage

import (
	"database/sql"
	"sync"
)

// UsageInfo describes how full the backing medium is.
type UsageInfo struct {
	TotalBytes   int64   `json:"total_bytes"`
	ItemCount    int     `json:"item_count"`
	QuotaPercent float64 `json:"quota_percent"`
}

// QuotaWarnFunc is invoked when usage crosses the high-water mark. It is an
// optional capability; a nil hook disables the signal.
type QuotaWarnFunc func(info UsageInfo)

// Options bound the store and wire its optional quota signal.
type Options struct {
	QuotaBytes  int64
	WarnPercent float64
	OnQuotaWarn QuotaWarnFunc
}

// store handles all database operations for persisted records.
type store struct {
	db   *sql.DB
	mu   sync.RWMutex
	opts Options

	// rmwMu serializes read-modify-write cycles (Exclusive). It is
	// separate from mu so Get/Set inside an exclusive section do not
	// deadlock.
	rmwMu sync.Mutex

	// aboveWater tracks whether the last observed usage was past the
	// high-water mark, so the warning fires once per crossing.
	aboveWater bool
}
