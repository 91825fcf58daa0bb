package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
)

// New creates a new history Manager. It subscribes to lifecycle events so
// its read-through cache is invalidated whenever the tournament manager
// mutates the store.
func New(store storage.Store, aggregator *scoring.Aggregator, bus events.Bus, metricsSvc metrics.Metrics) Manager {
	m := &manager{
		store:      store,
		aggregator: aggregator,
		bus:        bus,
		metrics:    metricsSvc,
	}

	ch, unsubscribe, err := bus.Subscribe()
	if err != nil {
		log.Error("Failed to subscribe to lifecycle events, cache invalidation disabled", "error", err)
	} else {
		m.unsubscribe = unsubscribe
		go func() {
			for range ch {
				m.invalidate()
			}
		}()
	}
	return m
}

// Close releases the event subscription.
func (m *manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Query runs the composed pipeline over completed tournaments:
// filter -> search -> sort -> paginate.
func (m *manager) Query(opts QueryOptions) []models.Tournament {
	completed, err := m.completed()
	if err != nil {
		log.Error("Failed to load history", "error", err)
		return nil
	}

	result := Filter(completed, opts)
	result = Search(result, opts.Search)
	result = Sort(result, opts.SortBy, opts.SortDesc)
	return Paginate(result, opts.Page, opts.PageSize)
}

// Archive evicts completed tournaments whose end date precedes
// now - retainDays from the active record and the ledger.
func (m *manager) Archive(retainDays int) ArchiveResult {
	if retainDays <= 0 {
		retainDays = DefaultRetainDays
	}
	cutoff := time.Now().Unix() - int64(retainDays)*24*60*60

	// The sweep rewrites the same records the tournament manager owns,
	// so the whole cycle runs behind the store's exclusive lock.
	var result ArchiveResult
	m.store.Exclusive(func() {
		all, ledger, err := m.load()
		if err != nil {
			log.Error("Archive failed to load records", "error", err)
			return
		}

		kept := ledger.CompletedIDs[:0]
		for _, id := range ledger.CompletedIDs {
			t, ok := all[id]
			if !ok {
				continue
			}
			if t.Status == models.StatusCompleted && t.EndedAt != 0 && t.EndedAt < cutoff {
				if payload, err := json.Marshal(t); err == nil {
					result.FreedBytes += int64(len(payload))
				}
				delete(all, id)
				result.ArchivedCount++
				continue
			}
			kept = append(kept, id)
		}
		if result.ArchivedCount == 0 {
			return
		}
		ledger.CompletedIDs = kept

		if err := m.store.Set(storage.KeyTournaments, all); err != nil {
			log.Error("Archive failed to persist tournaments", "error", err)
			result = ArchiveResult{}
			return
		}
		if err := m.store.Set(storage.KeyLedger, ledger); err != nil {
			log.Error("Archive failed to persist ledger", "error", err)
		}
	})
	if result.ArchivedCount == 0 {
		return result
	}
	m.invalidate()

	log.Info("Archived completed tournaments", "count", result.ArchivedCount, "freedBytes", result.FreedBytes, "retainDays", retainDays)
	m.metrics.IncArchiveRuns()
	return result
}

// ExportAll serializes the filtered completed tournament set plus metadata
// and an analytics digest into a single JSON document.
func (m *manager) ExportAll(opts QueryOptions) ([]byte, error) {
	tournaments := m.Query(opts)
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}

	participants := 0
	var durationSum float64
	gamesSeen := make(map[string]bool)
	for _, t := range tournaments {
		participants += len(t.Participants)
		durationSum += float64(t.Duration())
		for _, g := range t.Games {
			gamesSeen[g] = true
		}
	}
	games := make([]string, 0, len(gamesSeen))
	for g := range gamesSeen {
		games = append(games, g)
	}
	sort.Strings(games)

	doc := models.ExportDocument{
		Tournaments: tournaments,
		Metadata: models.ExportMetadata{
			TournamentCount:  len(tournaments),
			ParticipantCount: participants,
			ExportedAt:       time.Now().Unix(),
			Version:          models.ExportVersion,
		},
		Analytics: models.AnalyticsDigest{
			TotalTournaments:  len(tournaments),
			TotalParticipants: participants,
			GamesPlayed:       games,
		},
	}
	if len(tournaments) > 0 {
		doc.Analytics.AverageDuration = durationSum / float64(len(tournaments))
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return payload, nil
}

// ImportAll merges an export document back into the store. A document
// without a tournaments array is a hard validation failure. Tournaments
// already present are left untouched, so re-importing is a no-op.
func (m *manager) ImportAll(data []byte) bool {
	var doc struct {
		Tournaments *[]models.Tournament `json:"tournaments"`
		Metadata    models.ExportMetadata
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("Import rejected: malformed document", "error", err)
		return false
	}
	if doc.Tournaments == nil {
		log.Warn("Import rejected: missing tournaments array")
		return false
	}

	imported := 0
	ok := false
	m.store.Exclusive(func() {
		all, ledger, err := m.load()
		if err != nil {
			log.Error("Import failed to load records", "error", err)
			return
		}

		for _, t := range *doc.Tournaments {
			if t.ID == "" {
				log.Warn("Import skipped tournament without id")
				continue
			}
			if _, exists := all[t.ID]; exists {
				continue
			}
			all[t.ID] = t
			imported++
			if t.Status == models.StatusCompleted && !ledger.Contains(t.ID) {
				ledger.CompletedIDs = append(ledger.CompletedIDs, t.ID)
				ledger.TotalTournaments++
				ledger.TotalParticipants += len(t.Participants)
			}
		}
		if imported == 0 {
			ok = true
			return
		}

		if err := m.store.Set(storage.KeyTournaments, all); err != nil {
			log.Error("Import failed to persist tournaments", "error", err)
			return
		}
		if err := m.store.Set(storage.KeyLedger, ledger); err != nil {
			log.Error("Import failed to persist ledger", "error", err)
			return
		}
		ok = true
	})
	if !ok {
		return false
	}
	if imported == 0 {
		return true
	}
	m.invalidate()

	log.Info("Imported tournaments", "count", imported)
	return true
}

// completed returns the completed tournaments, served from the cache when
// it is still valid.
func (m *manager) completed() ([]models.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cacheValid {
		return m.cached, nil
	}

	all, ledger, err := m.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Tournament, 0, len(ledger.CompletedIDs))
	for _, id := range ledger.CompletedIDs {
		if t, ok := all[id]; ok && t.Status == models.StatusCompleted {
			out = append(out, t)
		}
	}

	m.cached = out
	m.cacheValid = true
	return out, nil
}

func (m *manager) load() (map[string]models.Tournament, models.Ledger, error) {
	all := make(map[string]models.Tournament)
	if _, err := m.store.Get(storage.KeyTournaments, &all); err != nil {
		return nil, models.Ledger{}, fmt.Errorf("failed to load tournaments record: %w", err)
	}
	var ledger models.Ledger
	if _, err := m.store.Get(storage.KeyLedger, &ledger); err != nil {
		return nil, models.Ledger{}, fmt.Errorf("failed to load history ledger: %w", err)
	}
	return all, ledger, nil
}

func (m *manager) invalidate() {
	m.mu.Lock()
	m.cacheValid = false
	m.cached = nil
	m.mu.Unlock()
}
