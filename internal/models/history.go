package models

// Ledger indexes completed tournaments and keeps the incrementally
// maintained aggregate counters. It lives under its own store record.
type Ledger struct {
	CompletedIDs      []string `json:"completed_ids"`
	TotalTournaments  int      `json:"total_tournaments"`
	TotalParticipants int      `json:"total_participants"`
}

// Contains reports whether a tournament id is in the ledger.
func (l *Ledger) Contains(id string) bool {
	for _, existing := range l.CompletedIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// ExportVersion is the current export document version.
const ExportVersion = 1

// ExportDocument is the single JSON document produced by export and accepted
// by import.
type ExportDocument struct {
	Tournaments []Tournament    `json:"tournaments"`
	Metadata    ExportMetadata  `json:"metadata"`
	Analytics   AnalyticsDigest `json:"analytics"`
}

// ExportMetadata carries counts and provenance for an export.
type ExportMetadata struct {
	TournamentCount  int   `json:"tournament_count"`
	ParticipantCount int   `json:"participant_count"`
	ExportedAt       int64 `json:"exported_at"`
	Version          int   `json:"version"`
}

// AnalyticsDigest is the summary snapshot embedded in an export.
type AnalyticsDigest struct {
	TotalTournaments  int      `json:"total_tournaments"`
	TotalParticipants int      `json:"total_participants"`
	GamesPlayed       []string `json:"games_played"`
	AverageDuration   float64  `json:"average_duration_seconds"`
}
