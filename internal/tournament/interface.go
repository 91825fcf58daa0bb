package tournament

import (
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/validate"
)

// Manager owns tournament entities: CRUD, the lifecycle state machine,
// participant membership, and rank recomputation. Contract failures are
// value returns (nil/false) paired with an emitted error event; nothing in
// here terminates the host.
type Manager interface {
	Create(cfg validate.TournamentConfig) *models.Tournament
	Get(id string) *models.Tournament
	Update(id string, patch Patch) *models.Tournament
	Delete(id string) bool
	ListAll(filter ListFilter) []models.Tournament

	Join(id, participantID, name string) bool
	Leave(id, participantID string) bool

	Start(id string) bool
	Complete(id string) bool
	Status(id string) *models.StatusView

	// RecordScore ingests a raw score reported by a game collaborator,
	// normalizes it, and folds it into the participant's aggregate.
	RecordScore(id, participantID, gameID string, rawScore float64, meta *scoring.Metadata) bool
	Leaderboard(id string) *models.Leaderboard
}
