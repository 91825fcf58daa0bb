package history

import (
	"sync"

	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
)

// DefaultRetainDays is the archive retention window when none is given.
const DefaultRetainDays = 30

// manager implements Manager over the shared store.
type manager struct {
	store      storage.Store
	aggregator *scoring.Aggregator
	bus        events.Bus
	metrics    metrics.Metrics

	// Read-through cache of completed tournaments, invalidated whenever a
	// lifecycle event lands or this manager mutates the store itself.
	mu          sync.Mutex
	cached      []models.Tournament
	cacheValid  bool
	unsubscribe func()
}

// SortField selects the Query sort key.
type SortField string

const (
	SortByName             SortField = "name"
	SortByStartDate        SortField = "startDate"
	SortByEndDate          SortField = "endDate"
	SortByParticipantCount SortField = "participantCount"
	SortByDuration         SortField = "duration"
)

// QueryOptions composes the query pipeline: range/format/game/participant
// filters, then free-text search, then sort, then pagination. Zero values
// disable a stage.
type QueryOptions struct {
	EndedAfter      int64         `json:"ended_after,omitempty"`
	EndedBefore     int64         `json:"ended_before,omitempty"`
	Format          models.Format `json:"format,omitempty"`
	GameID          string        `json:"game_id,omitempty"`
	MinParticipants int           `json:"min_participants,omitempty"`
	MaxParticipants int           `json:"max_participants,omitempty"`

	Search string `json:"search,omitempty"`

	SortBy   SortField `json:"sort_by,omitempty"`
	SortDesc bool      `json:"sort_desc,omitempty"`

	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// Trend labels a player's rank trajectory over time.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendDeclining    Trend = "declining"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient-data"
)

// PlayerStats is the derived per-player report. When the player has fewer
// than two completed tournaments, InsufficientData is set and the trend
// carries no slope.
type PlayerStats struct {
	PlayerID         string                   `json:"player_id"`
	PlayerName       string                   `json:"player_name"`
	Tournaments      int                      `json:"tournaments"`
	Wins             int                      `json:"wins"`
	Podiums          int                      `json:"podiums"`
	AverageRank      float64                  `json:"average_rank"`
	AverageScore     float64                  `json:"average_score"`
	BestRank         int                      `json:"best_rank"`
	WorstRank        int                      `json:"worst_rank"`
	PerGame          map[string]GameBreakdown `json:"per_game"`
	Trend            Trend                    `json:"trend"`
	TrendSlope       float64                  `json:"trend_slope"`
	InsufficientData bool                     `json:"insufficient_data"`
}

// GameBreakdown is one player's aggregate for a single game.
type GameBreakdown struct {
	Plays     int     `json:"plays"`
	BestScore float64 `json:"best_score"`
	AvgScore  float64 `json:"avg_score"`
}

// GameAnalytics is the derived per-game report across completed tournaments.
type GameAnalytics struct {
	GameID          string  `json:"game_id"`
	TournamentCount int     `json:"tournament_count"`
	ScoreCount      int     `json:"score_count"`
	AverageScore    float64 `json:"average_score"`
	MedianScore     float64 `json:"median_score"`
	// Difficulty is derived from the coefficient of variation of raw
	// scores, scaled onto 0-10; 5 is neutral.
	Difficulty float64 `json:"difficulty"`
	// CompetitiveBalance is distinct winners over tournaments, in [0,1].
	CompetitiveBalance float64 `json:"competitive_balance"`
}

// CrossGameReport compares all games seen in completed tournaments.
type CrossGameReport struct {
	Games            []GameAnalytics `json:"games"`
	MostDifficult    string          `json:"most_difficult,omitempty"`
	LeastDifficult   string          `json:"least_difficult,omitempty"`
	MostBalanced     string          `json:"most_balanced,omitempty"`
	TotalTournaments int             `json:"total_tournaments"`
}

// ArchiveResult reports what an archive sweep evicted.
type ArchiveResult struct {
	ArchivedCount int   `json:"archived_count"`
	FreedBytes    int64 `json:"freed_bytes"`
}
