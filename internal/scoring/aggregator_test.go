package scoring_test

import (
	"testing"

	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregator() *scoring.Aggregator {
	return scoring.New(games.Default())
}

func TestNormalize(t *testing.T) {
	agg := newAggregator()

	t.Run("maps range onto unit interval", func(t *testing.T) {
		assert.Equal(t, 0.0, agg.Normalize("snake", 0, nil))
		assert.Equal(t, 1.0, agg.Normalize("snake", 2000, nil))
		assert.InDelta(t, 0.25, agg.Normalize("snake", 500, nil), 1e-9)
	})

	t.Run("clamps out-of-range input", func(t *testing.T) {
		assert.Equal(t, 0.0, agg.Normalize("snake", -50, nil))
		assert.Equal(t, 1.0, agg.Normalize("snake", 99999, nil))
	})

	t.Run("unknown game falls back to default envelope", func(t *testing.T) {
		got := agg.Normalize("quake", 5000, nil)
		assert.InDelta(t, 0.5, got, 1e-9)
	})

	t.Run("monotonic non-decreasing in raw score", func(t *testing.T) {
		meta := &scoring.Metadata{Level: 4, DurationSec: 240}
		for _, gameID := range []string{"snake", "tetris", "pong", "quake"} {
			prev := -1.0
			for raw := -500.0; raw <= 120000; raw += 613 {
				got := agg.Normalize(gameID, raw, meta)
				require.GreaterOrEqual(t, got, prev, "game %s at raw %f", gameID, raw)
				require.GreaterOrEqual(t, got, 0.0)
				require.LessOrEqual(t, got, 1.0)
				prev = got
			}
		}
	})

	t.Run("level metadata shifts the curve within bounds", func(t *testing.T) {
		without := agg.Normalize("snake", 1000, nil)
		with := agg.Normalize("snake", 1000, &scoring.Metadata{Level: 10})
		assert.Greater(t, with, without)
		assert.LessOrEqual(t, with, 1.0)

		// Level beyond the game's maximum is capped, not rejected.
		capped := agg.Normalize("snake", 1000, &scoring.Metadata{Level: 99})
		assert.Equal(t, with, capped)
	})

	t.Run("duration metadata shifts the curve within bounds", func(t *testing.T) {
		without := agg.Normalize("snake", 1000, nil)
		short := agg.Normalize("snake", 1000, &scoring.Metadata{DurationSec: 60})
		long := agg.Normalize("snake", 1000, &scoring.Metadata{DurationSec: 600})

		// A full-length session lifts a mid-range score, a brief one damps it.
		assert.Greater(t, long, without)
		assert.Less(t, short, without)
		assert.LessOrEqual(t, long, 1.0)

		// The bonus saturates; a marathon session earns no extra credit.
		marathon := agg.Normalize("snake", 1000, &scoring.Metadata{DurationSec: 7200})
		assert.Equal(t, long, marathon)
	})

	t.Run("duration never outweighs the raw score", func(t *testing.T) {
		lowRawLongSession := agg.Normalize("snake", 200, &scoring.Metadata{DurationSec: 7200})
		highRawNoMeta := agg.Normalize("snake", 1800, nil)
		assert.Less(t, lowRawLongSession, highRawNoMeta)
	})
}

func participant(id string, total float64) models.Participant {
	return models.Participant{ID: id, Name: id, TotalScore: total}
}

func TestRank(t *testing.T) {
	t.Run("orders by total descending", func(t *testing.T) {
		ranked := scoring.Rank([]models.Participant{
			participant("low", 0.2),
			participant("high", 0.9),
			participant("mid", 0.5),
		})
		require.Len(t, ranked, 3)
		assert.Equal(t, "high", ranked[0].ID)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, "mid", ranked[1].ID)
		assert.Equal(t, 2, ranked[1].Rank)
		assert.Equal(t, "low", ranked[2].ID)
		assert.Equal(t, 3, ranked[2].Rank)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		ranked := scoring.Rank([]models.Participant{
			participant("first", 0.5),
			participant("second", 0.5),
			participant("third", 0.5),
		})
		assert.Equal(t, []string{"first", "second", "third"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		in := []models.Participant{participant("a", 0.1), participant("b", 0.9)}
		scoring.Rank(in)
		assert.Equal(t, "a", in[0].ID)
		assert.Zero(t, in[0].Rank)
	})

	t.Run("ranks are a permutation of 1..N", func(t *testing.T) {
		ranked := scoring.Rank([]models.Participant{
			participant("a", 0.3), participant("b", 0.3),
			participant("c", 0.8), participant("d", 0.1),
		})
		seen := map[int]bool{}
		for _, p := range ranked {
			seen[p.Rank] = true
		}
		for want := 1; want <= 4; want++ {
			assert.True(t, seen[want], "missing rank %d", want)
		}
	})
}

func TestLeaderboard(t *testing.T) {
	agg := newAggregator()

	board := agg.Leaderboard("t1", []models.Participant{
		participant("p1", 0.2),
		participant("p2", 0.8),
		participant("p3", 0.5),
	})

	assert.Equal(t, "t1", board.TournamentID)
	require.Len(t, board.Entries, 3)
	assert.Equal(t, "p2", board.Entries[0].Participant)
	assert.Equal(t, 1, board.Entries[0].Position)
	assert.InDelta(t, 0.5, board.Summary.Mean, 1e-9)
	assert.Equal(t, 0.8, board.Summary.Max)
	assert.Equal(t, 0.2, board.Summary.Min)

	t.Run("empty participant list", func(t *testing.T) {
		board := agg.Leaderboard("t1", nil)
		assert.Empty(t, board.Entries)
		assert.Zero(t, board.Summary.Mean)
	})
}

func TestTotal(t *testing.T) {
	p := models.Participant{
		RawScores:        map[string]float64{"snake": 500, "pong": 10},
		NormalizedScores: map[string]float64{"snake": 0.25, "pong": 0.47},
	}
	assert.InDelta(t, 510, scoring.Total(p, false), 1e-9)
	assert.InDelta(t, 0.72, scoring.Total(p, true), 1e-9)
}
