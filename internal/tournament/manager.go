package tournament

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/validate"
)

// New creates a new tournament Manager.
func New(store storage.Store, aggregator *scoring.Aggregator, registry *games.Registry, bus events.Bus, metricsSvc metrics.Metrics) Manager {
	return &manager{
		store:      store,
		aggregator: aggregator,
		registry:   registry,
		bus:        bus,
		metrics:    metricsSvc,
	}
}

// Create validates the config and allocates a new tournament in status
// "created". On any violation it fails without touching storage.
func (m *manager) Create(cfg validate.TournamentConfig) *models.Tournament {
	defer m.timed(opCreate)()

	res := validate.Config(cfg, m.registry.Known)
	if !res.Valid {
		m.fail(opCreate, "", fmt.Sprintf("invalid config: %v", res.Errors))
		return nil
	}

	now := time.Now().Unix()
	t := models.Tournament{
		ID:           uuid.NewString(),
		Name:         validate.SanitizeName(cfg.Name),
		Games:        append([]string(nil), cfg.Games...),
		Format:       models.Format(cfg.Format),
		Participants: []models.Participant{},
		Status:       models.StatusCreated,
		Settings: models.Settings{
			MaxParticipants: cfg.Settings.MaxParticipants,
			NormalizeScores: cfg.Settings.NormalizeScores,
			AutoAdvance:     cfg.Settings.AutoAdvance,
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved := false
	m.store.Exclusive(func() {
		all, err := m.loadAll()
		if err != nil {
			m.fail(opCreate, "", err.Error())
			return
		}
		all[t.ID] = t
		if err := m.saveAll(all); err != nil {
			m.fail(opCreate, t.ID, err.Error())
			return
		}
		saved = true
	})
	if !saved {
		return nil
	}

	log.Info("Tournament created", "tournamentID", t.ID, "name", t.Name, "games", len(t.Games))
	m.metrics.IncTournamentsCreated()
	m.emit(events.TypeCreated, &t)
	return t.Clone()
}

// Get returns a copy of the tournament, or nil when it does not exist.
func (m *manager) Get(id string) *models.Tournament {
	all, err := m.loadAll()
	if err != nil {
		log.Error("Failed to load tournaments", "error", err)
		return nil
	}
	t, ok := all[id]
	if !ok {
		return nil
	}
	return t.Clone()
}

// Update applies a partial update. Completed tournaments are frozen.
func (m *manager) Update(id string, patch Patch) *models.Tournament {
	defer m.timed(opUpdate)()

	var updated *models.Tournament
	ok := m.mutate(opUpdate, id, func(t *models.Tournament) bool {
		if t.Status == models.StatusCompleted {
			m.fail(opUpdate, id, "tournament is completed and frozen")
			return false
		}
		if patch.Name != nil {
			name := validate.SanitizeName(*patch.Name)
			if name == "" || utf8.RuneCountInString(name) > validate.MaxNameLength {
				m.fail(opUpdate, id, "invalid tournament name")
				return false
			}
			t.Name = name
		}
		if patch.Settings != nil {
			s := *patch.Settings
			if s.MaxParticipants < 2 || s.MaxParticipants > validate.MaxParticipantsCap {
				m.fail(opUpdate, id, "invalid max participants")
				return false
			}
			if s.MaxParticipants < len(t.Participants) {
				m.fail(opUpdate, id, "max participants below current participant count")
				return false
			}
			t.Settings = s
		}
		updated = t
		return true
	})
	if !ok {
		return nil
	}

	m.emit(events.TypeUpdated, updated)
	return updated.Clone()
}

// Delete removes a tournament and all its traces from the store. Completed
// tournaments belong to history and cannot be deleted here.
func (m *manager) Delete(id string) bool {
	defer m.timed(opDelete)()

	var t models.Tournament
	deleted := false
	m.store.Exclusive(func() {
		all, err := m.loadAll()
		if err != nil {
			m.fail(opDelete, id, err.Error())
			return
		}
		var ok bool
		t, ok = all[id]
		if !ok {
			m.fail(opDelete, id, "tournament not found")
			return
		}
		if t.Status == models.StatusCompleted {
			m.fail(opDelete, id, "completed tournaments cannot be deleted")
			return
		}

		delete(all, id)
		if err := m.saveAll(all); err != nil {
			m.fail(opDelete, id, err.Error())
			return
		}
		deleted = true
	})
	if !deleted {
		return false
	}

	log.Info("Tournament deleted", "tournamentID", id)
	m.emit(events.TypeDeleted, &t)
	return true
}

// ListAll returns tournaments matching the filter, newest first.
func (m *manager) ListAll(filter ListFilter) []models.Tournament {
	all, err := m.loadAll()
	if err != nil {
		log.Error("Failed to load tournaments", "error", err)
		return nil
	}

	out := make([]models.Tournament, 0, len(all))
	for _, t := range all {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Format != "" && t.Format != filter.Format {
			continue
		}
		if filter.GameID != "" && !t.HasGame(filter.GameID) {
			continue
		}
		out = append(out, *t.Clone())
	}
	sortByCreatedDesc(out)
	return out
}

// Status returns a read-only snapshot, or nil when the id is unknown.
func (m *manager) Status(id string) *models.StatusView {
	all, err := m.loadAll()
	if err != nil {
		log.Error("Failed to load tournaments", "error", err)
		return nil
	}
	t, ok := all[id]
	if !ok {
		return nil
	}
	return &models.StatusView{
		ID:               t.ID,
		Name:             t.Name,
		Status:           t.Status,
		ParticipantCount: len(t.Participants),
		MaxParticipants:  t.Settings.MaxParticipants,
		GameCount:        len(t.Games),
		StartedAt:        t.StartedAt,
		EndedAt:          t.EndedAt,
		Version:          t.Version,
	}
}

// Leaderboard regenerates the derived ranked view for a tournament.
func (m *manager) Leaderboard(id string) *models.Leaderboard {
	all, err := m.loadAll()
	if err != nil {
		log.Error("Failed to load tournaments", "error", err)
		return nil
	}
	t, ok := all[id]
	if !ok {
		return nil
	}
	board := m.aggregator.Leaderboard(t.ID, t.Participants)
	return &board
}

// loadAll reads the full tournaments record.
func (m *manager) loadAll() (map[string]models.Tournament, error) {
	all := make(map[string]models.Tournament)
	if _, err := m.store.Get(storage.KeyTournaments, &all); err != nil {
		return nil, fmt.Errorf("failed to load tournaments record: %w", err)
	}
	return all, nil
}

// saveAll persists the full tournaments record.
func (m *manager) saveAll(all map[string]models.Tournament) error {
	if err := m.store.Set(storage.KeyTournaments, all); err != nil {
		return fmt.Errorf("failed to persist tournaments record: %w", err)
	}
	return nil
}

// mutate runs a read-modify-write cycle for one tournament, serialized
// behind the store's exclusive lock so concurrent mutations cannot lose
// updates. The callback returns false to abort without persisting; it is
// responsible for emitting its own failure diagnostics.
func (m *manager) mutate(op, id string, fn func(t *models.Tournament) bool) bool {
	saved := false
	m.store.Exclusive(func() {
		all, err := m.loadAll()
		if err != nil {
			m.fail(op, id, err.Error())
			return
		}
		t, ok := all[id]
		if !ok {
			m.fail(op, id, "tournament not found")
			return
		}

		if !fn(&t) {
			return
		}
		t.Version++
		t.UpdatedAt = time.Now().Unix()

		all[id] = t
		if err := m.saveAll(all); err != nil {
			m.fail(op, id, err.Error())
			return
		}
		saved = true
	})
	return saved
}

// recomputeRanks refreshes totals and the cached rank of every participant,
// preserving the participant list's insertion order.
func (m *manager) recomputeRanks(t *models.Tournament) {
	for i := range t.Participants {
		t.Participants[i].TotalScore = scoring.Total(t.Participants[i], t.Settings.NormalizeScores)
	}
	ranked := scoring.Rank(t.Participants)
	rankByID := make(map[string]int, len(ranked))
	for _, p := range ranked {
		rankByID[p.ID] = p.Rank
	}
	for i := range t.Participants {
		t.Participants[i].Rank = rankByID[t.Participants[i].ID]
	}
}

func (m *manager) emit(eventType events.Type, t *models.Tournament) {
	evt := events.Event{
		Type:         eventType,
		TournamentID: t.ID,
		Entity:       t.Clone(),
	}
	if err := m.bus.Publish(evt); err != nil {
		log.Error("Failed to publish lifecycle event", "type", eventType, "tournamentID", t.ID, "error", err)
		return
	}
	m.metrics.IncEventsPublished(string(eventType))
}

// fail records a contract failure: log, metric, error event. The operation
// itself still returns its sentinel value to the caller.
func (m *manager) fail(op, tournamentID, message string) {
	log.Warn("Operation failed", "op", op, "tournamentID", tournamentID, "reason", message)
	m.metrics.IncOperationErrors(op)
	evt := events.Event{
		Type:         events.TypeError,
		TournamentID: tournamentID,
		Error:        &events.Error{Op: op, Message: message},
	}
	if err := m.bus.Publish(evt); err != nil {
		log.Error("Failed to publish error event", "op", op, "error", err)
		return
	}
	m.metrics.IncEventsPublished(string(events.TypeError))
}

func (m *manager) timed(op string) func() {
	start := time.Now()
	return func() {
		m.metrics.ObserveOperationDuration(op, time.Since(start).Seconds())
	}
}
