package tournament

import (
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
)

// manager implements Manager over the persistent store. All mutations are
// read-modify-write of the full tournaments record; the host's single
// logical owner discipline keeps that race-free.
type manager struct {
	store      storage.Store
	aggregator *scoring.Aggregator
	registry   *games.Registry
	bus        events.Bus
	metrics    metrics.Metrics
}

// Patch is a partial update applied by Update. Nil fields are left as-is.
type Patch struct {
	Name     *string          `json:"name,omitempty"`
	Settings *models.Settings `json:"settings,omitempty"`
}

// ListFilter narrows ListAll results. Zero values match everything.
type ListFilter struct {
	Status models.Status `json:"status,omitempty"`
	Format models.Format `json:"format,omitempty"`
	GameID string        `json:"game_id,omitempty"`
}

// Operation names used in error events and metrics labels.
const (
	opCreate      = "create"
	opUpdate      = "update"
	opDelete      = "delete"
	opJoin        = "join"
	opLeave       = "leave"
	opStart       = "start"
	opComplete    = "complete"
	opRecordScore = "record-score"
)
