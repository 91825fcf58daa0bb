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

type Server struct {
	Tournaments    tournament.Manager
	History        history.Manager
	Store          storage.Store
	Registry       *games.Registry
	Monitor        perf.Monitor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
