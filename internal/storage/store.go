package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultQuotaBytes  = 5 * 1024 * 1024
	defaultWarnPercent = 80
)

// New creates a new Store backed by the given database.
func New(db *sql.DB, opts Options) Store {
	if opts.QuotaBytes <= 0 {
		opts.QuotaBytes = defaultQuotaBytes
	}
	if opts.WarnPercent <= 0 {
		opts.WarnPercent = defaultWarnPercent
	}
	return &store{
		db:   db,
		opts: opts,
	}
}

func (s *store) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read record %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("failed to decode record %q: %w", key, err)
	}
	return true, nil
}

func (s *store) Set(key string, v any) error {
	// Serialize outside the write so a marshal failure leaves the old
	// value untouched.
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to serialize record", "key", key, "error", err)
		return fmt.Errorf("failed to serialize record %q: %w", key, err)
	}

	s.mu.Lock()
	_, err = s.db.Exec(`
		INSERT INTO records (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`, key, string(payload), time.Now().Unix())
	if err != nil {
		s.mu.Unlock()
		log.Error("Failed to persist record", "key", key, "error", err)
		return fmt.Errorf("failed to persist record %q: %w", key, err)
	}
	warn := s.checkQuotaLocked()
	hook := s.opts.OnQuotaWarn
	s.mu.Unlock()

	// The hook runs outside the lock so subscribers may call back into
	// the store (archiving reads and removes records).
	if warn != nil && hook != nil {
		hook(*warn)
	}
	return nil
}

func (s *store) Exclusive(fn func()) {
	s.rmwMu.Lock()
	defer s.rmwMu.Unlock()
	fn()
}

func (s *store) SetQuotaWarnHook(hook QuotaWarnFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.OnQuotaWarn = hook
}

func (s *store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM records WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to remove record %q: %w", key, err)
	}
	return nil
}

func (s *store) UsageInfo() (UsageInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usageInfoLocked()
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM records")
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	s.aboveWater = false
	return nil
}

func (s *store) usageInfoLocked() (UsageInfo, error) {
	var totalBytes sql.NullInt64
	var itemCount int
	err := s.db.QueryRow("SELECT COALESCE(SUM(LENGTH(value)), 0), COUNT(*) FROM records").Scan(&totalBytes, &itemCount)
	if err != nil {
		return UsageInfo{}, fmt.Errorf("failed to compute usage: %w", err)
	}
	return UsageInfo{
		TotalBytes:   totalBytes.Int64,
		ItemCount:    itemCount,
		QuotaPercent: float64(totalBytes.Int64) / float64(s.opts.QuotaBytes) * 100,
	}, nil
}

// checkQuotaLocked reports usage to warn about, once per high-water crossing.
// The store keeps accepting writes below hard capacity; acting on the signal
// (archiving, compression) is up to the subscriber.
func (s *store) checkQuotaLocked() *UsageInfo {
	info, err := s.usageInfoLocked()
	if err != nil {
		log.Error("Failed to check quota", "error", err)
		return nil
	}

	above := info.QuotaPercent >= s.opts.WarnPercent
	crossed := above && !s.aboveWater
	s.aboveWater = above
	if !crossed {
		return nil
	}
	log.Warn("Storage quota high-water mark crossed", "percent", info.QuotaPercent, "bytes", info.TotalBytes)
	return &info
}
