package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/tournament"
	"github.com/quarterline/arcade-circuit/internal/validate"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		if isDryRunFromContext(r) {
			fmt.Fprint(w, "Dry run: store untouched")
			return
		}
		if err := s.Store.Clear(); err != nil {
			log.Error("Failed to clear store", "error", err)
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, s.Registry.All())
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := tournament.ListFilter{
			Status: models.Status(r.URL.Query().Get("status")),
			Format: models.Format(r.URL.Query().Get("format")),
			GameID: r.URL.Query().Get("gameID"),
		}
		respondJSON(w, s.Tournaments.ListAll(filter))
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	type createRequest struct {
		Name     string          `json:"name"`
		Games    []string        `json:"games"`
		Format   string          `json:"format"`
		Settings models.Settings `json:"settings"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Malformed create request", "error", err)
			http.Error(w, "Malformed request body", http.StatusBadRequest)
			return
		}

		created := s.Tournaments.Create(validate.TournamentConfig{
			Name:   req.Name,
			Games:  req.Games,
			Format: req.Format,
			Settings: validate.Settings{
				MaxParticipants: req.Settings.MaxParticipants,
				NormalizeScores: req.Settings.NormalizeScores,
				AutoAdvance:     req.Settings.AutoAdvance,
			},
		})
		if created == nil {
			http.Error(w, "Invalid tournament config", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			log.Error("Failed to encode response", "error", err)
		}
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		t := s.Tournaments.Get(id)
		if t == nil {
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		respondJSON(w, t)
	}
}

func (s *Server) UpdateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		id := r.URL.Query().Get("id")
		var patch tournament.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Malformed request body", http.StatusBadRequest)
			return
		}
		updated := s.Tournaments.Update(id, patch)
		if updated == nil {
			http.Error(w, "Update rejected", http.StatusConflict)
			return
		}
		respondJSON(w, updated)
	}
}

func (s *Server) DeleteTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if !s.Tournaments.Delete(id) {
			http.Error(w, "Delete rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Deleted tournament %s", id)
	}
}

func (s *Server) JoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		participantID := r.URL.Query().Get("participantID")
		name := r.URL.Query().Get("name")
		if !s.Tournaments.Join(id, participantID, name) {
			http.Error(w, "Join rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Participant %s joined %s", participantID, id)
	}
}

func (s *Server) LeaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		participantID := r.URL.Query().Get("participantID")
		if !s.Tournaments.Leave(id, participantID) {
			http.Error(w, "Leave rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Participant %s left %s", participantID, id)
	}
}

func (s *Server) StartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if !s.Tournaments.Start(id) {
			http.Error(w, "Start rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Tournament %s started", id)
	}
}

func (s *Server) CompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if !s.Tournaments.Complete(id) {
			http.Error(w, "Complete rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Tournament %s completed", id)
	}
}

func (s *Server) RecordScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id := q.Get("id")
		participantID := q.Get("participantID")
		gameID := q.Get("gameID")

		rawScore, err := strconv.ParseFloat(q.Get("score"), 64)
		if err != nil {
			http.Error(w, "Invalid score", http.StatusBadRequest)
			return
		}

		var meta *scoring.Metadata
		if q.Get("level") != "" || q.Get("duration") != "" {
			meta = &scoring.Metadata{}
			if level, err := strconv.Atoi(q.Get("level")); err == nil {
				meta.Level = level
			}
			if duration, err := strconv.ParseFloat(q.Get("duration"), 64); err == nil {
				meta.DurationSec = duration
			}
		}

		var recorded bool
		s.Monitor.Track("record-score", func() {
			recorded = s.Tournaments.RecordScore(id, participantID, gameID, rawScore, meta)
		})
		if !recorded {
			http.Error(w, "Score rejected", http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "Recorded %s score for %s", gameID, participantID)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		board := s.Tournaments.Leaderboard(id)
		if board == nil {
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		respondJSON(w, board)
	}
}

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		view := s.Tournaments.Status(id)
		if view == nil {
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		respondJSON(w, view)
	}
}

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
