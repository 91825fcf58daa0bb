package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/history"
	"github.com/quarterline/arcade-circuit/internal/models"
)

func (s *Server) HistoryQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, s.History.Query(queryOptionsFromRequest(r)))
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID required", http.StatusBadRequest)
			return
		}
		stats := s.History.PlayerStats(playerID)
		if stats == nil {
			http.Error(w, "Failed to compute player stats", http.StatusInternalServerError)
			return
		}
		respondJSON(w, stats)
	}
}

func (s *Server) GameAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID required", http.StatusBadRequest)
			return
		}
		analytics := s.History.GameAnalytics(gameID)
		if analytics == nil {
			http.Error(w, "Failed to compute game analytics", http.StatusInternalServerError)
			return
		}
		respondJSON(w, analytics)
	}
}

func (s *Server) ComparativeAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := s.History.ComparativeAnalytics()
		if report == nil {
			http.Error(w, "Failed to compute comparative analytics", http.StatusInternalServerError)
			return
		}
		respondJSON(w, report)
	}
}

func (s *Server) ArchiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		retainDays := history.DefaultRetainDays
		if raw := r.URL.Query().Get("retainDays"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid retainDays", http.StatusBadRequest)
				return
			}
			retainDays = parsed
		}

		if isDryRunFromContext(r) {
			log.Info("Dry run: archive skipped", "retainDays", retainDays)
			respondJSON(w, history.ArchiveResult{})
			return
		}
		respondJSON(w, s.History.Archive(retainDays))
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := s.History.ExportAll(queryOptionsFromRequest(r))
		if err != nil {
			log.Error("Export failed", "error", err)
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="tournaments-export.json"`)
		w.Write(payload)
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			fmt.Fprint(w, "Dry run: import skipped")
			return
		}
		if !s.History.ImportAll(payload) {
			http.Error(w, "Import rejected", http.StatusUnprocessableEntity)
			return
		}
		fmt.Fprint(w, "Import complete")
	}
}

func (s *Server) PerfSamplesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, s.Monitor.Samples())
	}
}

func (s *Server) PerfSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := r.URL.Query().Get("op")
		if op == "" {
			http.Error(w, "op required", http.StatusBadRequest)
			return
		}
		respondJSON(w, s.Monitor.Summary(op))
	}
}

// queryOptionsFromRequest maps history query parameters onto QueryOptions.
// Unparseable numerics fall back to the zero value, which disables the stage.
func queryOptionsFromRequest(r *http.Request) history.QueryOptions {
	q := r.URL.Query()
	opts := history.QueryOptions{
		Format:   models.Format(q.Get("format")),
		GameID:   q.Get("gameID"),
		Search:   q.Get("search"),
		SortBy:   history.SortField(q.Get("sortBy")),
		SortDesc: q.Get("sortDesc") == "true",
	}
	opts.EndedAfter, _ = strconv.ParseInt(q.Get("endedAfter"), 10, 64)
	opts.EndedBefore, _ = strconv.ParseInt(q.Get("endedBefore"), 10, 64)
	opts.MinParticipants, _ = strconv.Atoi(q.Get("minParticipants"))
	opts.MaxParticipants, _ = strconv.Atoi(q.Get("maxParticipants"))
	opts.Page, _ = strconv.Atoi(q.Get("page"))
	opts.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	return opts
}
