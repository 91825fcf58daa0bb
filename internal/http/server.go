package http

import (
	"net/http"

	"github.com/quarterline/arcade-circuit/internal/config"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/history"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/perf"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/tournament"
)

func NewServer(
	tournaments tournament.Manager,
	hist history.Manager,
	store storage.Store,
	registry *games.Registry,
	monitor perf.Monitor,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
) *Server {
	server := &Server{
		Tournaments:    tournaments,
		History:        hist,
		Store:          store,
		Registry:       registry,
		Monitor:        monitor,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper so
	// further middlewares (auth, rate limiting) slot in without touching
	// the handlers.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/games", Chain(s.ListGamesHandler(), paramsMiddleware))

	s.Router.Handle("/tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/create", Chain(s.CreateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/get", Chain(s.GetTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/update", Chain(s.UpdateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/delete", Chain(s.DeleteTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/join", Chain(s.JoinHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/leave", Chain(s.LeaveHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/start", Chain(s.StartHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/complete", Chain(s.CompleteHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/score", Chain(s.RecordScoreHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/status", Chain(s.StatusHandler(), paramsMiddleware))

	s.Router.Handle("/history/query", Chain(s.HistoryQueryHandler(), paramsMiddleware))
	s.Router.Handle("/history/player-stats", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("/history/game-analytics", Chain(s.GameAnalyticsHandler(), paramsMiddleware))
	s.Router.Handle("/history/comparative", Chain(s.ComparativeAnalyticsHandler(), paramsMiddleware))
	s.Router.Handle("/history/archive", Chain(s.ArchiveHandler(), paramsMiddleware))
	s.Router.Handle("/history/export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("/history/import", Chain(s.ImportHandler(), paramsMiddleware))

	s.Router.Handle("/perf/samples", Chain(s.PerfSamplesHandler(), paramsMiddleware))
	s.Router.Handle("/perf/summary", Chain(s.PerfSummaryHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
