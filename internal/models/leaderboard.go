package models

// Leaderboard is a derived, read-only ranked view of a tournament's
// participants at a point in time. It is regenerated on demand and never
// persisted or mutated in place.
type Leaderboard struct {
	TournamentID string             `json:"tournament_id"`
	Entries      []LeaderboardEntry `json:"entries"`
	Summary      ScoreSummary       `json:"summary"`
	GeneratedAt  int64              `json:"generated_at"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Position    int     `json:"position"`
	Participant string  `json:"participant_id"`
	Name        string  `json:"name"`
	TotalScore  float64 `json:"total_score"`
}

// ScoreSummary aggregates the totals behind a leaderboard.
type ScoreSummary struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// StatusView is the read-only snapshot returned by the manager's Status.
type StatusView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Status           Status `json:"status"`
	ParticipantCount int    `json:"participant_count"`
	MaxParticipants  int    `json:"max_participants"`
	GameCount        int    `json:"game_count"`
	StartedAt        int64  `json:"started_at,omitempty"`
	EndedAt          int64  `json:"ended_at,omitempty"`
	Version          int    `json:"version"`
}
