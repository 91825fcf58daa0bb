package scoring

import (
	"sort"
	"time"

	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/models"
)

// New creates an Aggregator over the given game registry.
func New(registry *games.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Normalize maps a raw game score onto [0,1]. The mapping is monotonic
// non-decreasing in rawScore and clamps out-of-range inputs instead of
// failing. Level and duration metadata each blend in a bounded bonus that
// is independent of the raw score, so monotonicity survives.
func (a *Aggregator) Normalize(gameID string, rawScore float64, meta *Metadata) float64 {
	spec, ok := a.registry.Lookup(gameID)
	if !ok {
		// Unregistered games are assigned a default envelope.
		spec = games.Spec{MinScore: 0, MaxScore: fallbackMaxScore}
	}

	span := spec.MaxScore - spec.MinScore
	if span <= 0 {
		return 0
	}
	base := clamp01((rawScore - spec.MinScore) / span)
	if meta == nil {
		return base
	}

	baseWeight := 1.0
	var bonus float64
	if meta.Level > 0 && spec.MaxLevel > 0 {
		level := meta.Level
		if level > spec.MaxLevel {
			level = spec.MaxLevel
		}
		baseWeight -= levelWeight
		bonus += float64(level) / float64(spec.MaxLevel) * levelWeight
	}
	if meta.DurationSec > 0 {
		frac := meta.DurationSec / referenceDurationSec
		if frac > 1 {
			frac = 1
		}
		baseWeight -= durationWeight
		bonus += frac * durationWeight
	}
	return clamp01(base*baseWeight + bonus)
}

// Rank orders participants by total score descending and assigns 1-based
// ranks. The sort is stable: equal totals keep their relative input order,
// which is the tie-break policy. The input slice is not modified.
func Rank(participants []models.Participant) []models.Participant {
	ranked := make([]models.Participant, len(participants))
	for i, p := range participants {
		ranked[i] = p.Clone()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Leaderboard builds the derived ranked view for a tournament. Runs in
// O(P log P) over participant count; per-game work is already folded into
// each participant's total.
func (a *Aggregator) Leaderboard(tournamentID string, participants []models.Participant) models.Leaderboard {
	ranked := Rank(participants)

	board := models.Leaderboard{
		TournamentID: tournamentID,
		Entries:      make([]models.LeaderboardEntry, 0, len(ranked)),
		GeneratedAt:  time.Now().Unix(),
	}

	var sum float64
	for i, p := range ranked {
		board.Entries = append(board.Entries, models.LeaderboardEntry{
			Position:    p.Rank,
			Participant: p.ID,
			Name:        p.Name,
			TotalScore:  p.TotalScore,
		})
		sum += p.TotalScore
		if i == 0 {
			board.Summary.Max = p.TotalScore
			board.Summary.Min = p.TotalScore
		} else {
			if p.TotalScore > board.Summary.Max {
				board.Summary.Max = p.TotalScore
			}
			if p.TotalScore < board.Summary.Min {
				board.Summary.Min = p.TotalScore
			}
		}
	}
	if len(ranked) > 0 {
		board.Summary.Mean = sum / float64(len(ranked))
	}
	return board
}

// Total recomputes a participant's aggregate score. Normalized totals are
// used when the tournament normalizes scores, raw totals otherwise.
func Total(p models.Participant, normalized bool) float64 {
	var sum float64
	if normalized {
		for _, v := range p.NormalizedScores {
			sum += v
		}
		return sum
	}
	for _, v := range p.RawScores {
		sum += v
	}
	return sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
