package tournament

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/validate"
)

// Join registers a participant. Re-joining is idempotent success; a full
// tournament or one already started rejects the join.
func (m *manager) Join(id, participantID, name string) bool {
	defer m.timed(opJoin)()

	var joined *models.Tournament
	alreadyIn := false
	ok := m.mutate(opJoin, id, func(t *models.Tournament) bool {
		if t.Status != models.StatusCreated {
			m.fail(opJoin, id, fmt.Sprintf("cannot join a tournament in status %q", t.Status))
			return false
		}
		for _, p := range t.Participants {
			if p.ID == participantID {
				alreadyIn = true
				return false
			}
		}
		if len(t.Participants) >= t.Settings.MaxParticipants {
			m.fail(opJoin, id, "tournament is full")
			return false
		}
		res := validate.Participant(participantID, name)
		if !res.Valid {
			m.fail(opJoin, id, fmt.Sprintf("invalid participant: %v", res.Errors))
			return false
		}

		t.Participants = append(t.Participants, models.Participant{
			ID:               participantID,
			Name:             validate.SanitizeName(name),
			RawScores:        map[string]float64{},
			NormalizedScores: map[string]float64{},
			// Placeholder until the first ranking pass.
			Rank:           len(t.Participants) + 1,
			GamesCompleted: []string{},
			JoinedAt:       time.Now().Unix(),
		})
		joined = t
		return true
	})
	if alreadyIn {
		log.Debug("Participant already joined", "tournamentID", id, "participantID", participantID)
		return true
	}
	if !ok {
		return false
	}

	log.Info("Participant joined", "tournamentID", id, "participantID", participantID, "count", len(joined.Participants))
	m.emit(events.TypeParticipantJoin, joined)
	return true
}

// Leave removes a participant and immediately recomputes ranks over the
// remaining field. Rejected once the tournament is completed.
func (m *manager) Leave(id, participantID string) bool {
	defer m.timed(opLeave)()

	var left *models.Tournament
	ok := m.mutate(opLeave, id, func(t *models.Tournament) bool {
		if t.Status == models.StatusCompleted {
			m.fail(opLeave, id, "cannot leave a completed tournament")
			return false
		}
		idx := -1
		for i, p := range t.Participants {
			if p.ID == participantID {
				idx = i
				break
			}
		}
		if idx < 0 {
			m.fail(opLeave, id, "participant not found")
			return false
		}

		t.Participants = append(t.Participants[:idx], t.Participants[idx+1:]...)
		m.recomputeRanks(t)
		left = t
		return true
	})
	if !ok {
		return false
	}

	log.Info("Participant left", "tournamentID", id, "participantID", participantID)
	m.emit(events.TypeParticipantLeft, left)
	return true
}

// Start transitions created -> active. Requires at least two participants.
func (m *manager) Start(id string) bool {
	defer m.timed(opStart)()

	var started *models.Tournament
	ok := m.mutate(opStart, id, func(t *models.Tournament) bool {
		if t.Status != models.StatusCreated {
			m.fail(opStart, id, fmt.Sprintf("cannot start a tournament in status %q", t.Status))
			return false
		}
		if len(t.Participants) < 2 {
			m.fail(opStart, id, "at least 2 participants required to start")
			return false
		}
		t.Status = models.StatusActive
		t.StartedAt = time.Now().Unix()
		started = t
		return true
	})
	if !ok {
		return false
	}

	log.Info("Tournament started", "tournamentID", id, "participants", len(started.Participants))
	m.emit(events.TypeStarted, started)
	return true
}

// Complete transitions active -> completed: final rank recomputation, end
// timestamp, ledger append. Ranks are frozen afterwards.
func (m *manager) Complete(id string) bool {
	defer m.timed(opComplete)()

	var completed *models.Tournament
	ok := m.mutate(opComplete, id, func(t *models.Tournament) bool {
		if t.Status != models.StatusActive {
			m.fail(opComplete, id, fmt.Sprintf("cannot complete a tournament in status %q", t.Status))
			return false
		}
		m.recomputeRanks(t)
		t.Status = models.StatusCompleted
		t.EndedAt = time.Now().Unix()
		completed = t
		return true
	})
	if !ok {
		return false
	}

	if err := m.appendToLedger(completed); err != nil {
		// The tournament is completed either way; the ledger is an index,
		// not the source of truth.
		log.Error("Failed to append to history ledger", "tournamentID", id, "error", err)
	}

	log.Info("Tournament completed", "tournamentID", id, "participants", len(completed.Participants))
	m.metrics.IncTournamentsCompleted()
	m.emit(events.TypeCompleted, completed)
	return true
}

// RecordScore ingests a `(gameId, rawScore, metadata)` tuple reported by a
// game collaborator for one participant. Repeat reports for the same game
// keep the participant's best run.
func (m *manager) RecordScore(id, participantID, gameID string, rawScore float64, meta *scoring.Metadata) bool {
	defer m.timed(opRecordScore)()

	ok := m.mutate(opRecordScore, id, func(t *models.Tournament) bool {
		if t.Status != models.StatusActive {
			m.fail(opRecordScore, id, fmt.Sprintf("cannot record scores in status %q", t.Status))
			return false
		}
		if !t.HasGame(gameID) {
			m.fail(opRecordScore, id, fmt.Sprintf("game %q is not part of this tournament", gameID))
			return false
		}
		idx := -1
		for i, p := range t.Participants {
			if p.ID == participantID {
				idx = i
				break
			}
		}
		if idx < 0 {
			m.fail(opRecordScore, id, "participant not found")
			return false
		}

		p := &t.Participants[idx]
		if p.RawScores == nil {
			p.RawScores = map[string]float64{}
		}
		if p.NormalizedScores == nil {
			p.NormalizedScores = map[string]float64{}
		}

		if prev, played := p.RawScores[gameID]; !played || rawScore > prev {
			p.RawScores[gameID] = rawScore
			p.NormalizedScores[gameID] = m.aggregator.Normalize(gameID, rawScore, meta)
		}
		if !p.HasCompleted(gameID) {
			p.GamesCompleted = append(p.GamesCompleted, gameID)
		}
		p.TotalScore = scoring.Total(*p, t.Settings.NormalizeScores)

		if t.Settings.AutoAdvance {
			m.recomputeRanks(t)
		}
		return true
	})
	if !ok {
		return false
	}

	log.Debug("Score recorded", "tournamentID", id, "participantID", participantID, "game", gameID, "rawScore", rawScore)
	m.metrics.IncScoresRecorded()
	return true
}

// appendToLedger indexes a completed tournament and bumps the aggregate
// counters maintained incrementally for the history manager.
func (m *manager) appendToLedger(t *models.Tournament) error {
	var ledger models.Ledger
	if _, err := m.store.Get(storage.KeyLedger, &ledger); err != nil {
		return fmt.Errorf("failed to load history ledger: %w", err)
	}
	if ledger.Contains(t.ID) {
		return nil
	}
	ledger.CompletedIDs = append(ledger.CompletedIDs, t.ID)
	ledger.TotalTournaments++
	ledger.TotalParticipants += len(t.Participants)
	if err := m.store.Set(storage.KeyLedger, ledger); err != nil {
		return fmt.Errorf("failed to persist history ledger: %w", err)
	}
	return nil
}

func sortByCreatedDesc(list []models.Tournament) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt != list[j].CreatedAt {
			return list[i].CreatedAt > list[j].CreatedAt
		}
		return list[i].ID < list[j].ID
	})
}
