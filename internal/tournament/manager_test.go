package tournament_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/models"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/tournament"
	"github.com/quarterline/arcade-circuit/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	manager tournament.Manager
	store   *storage.Mock
	bus     *events.Mock
	metrics *metrics.Mock
}

func setupManager(t *testing.T) *managerFixture {
	t.Helper()
	store := storage.NewMock()
	bus := events.NewMock()
	metricsSvc := metrics.NewMock()
	registry := games.Default()
	mgr := tournament.New(store, scoring.New(registry), registry, bus, metricsSvc)
	return &managerFixture{manager: mgr, store: store, bus: bus, metrics: metricsSvc}
}

func cupConfig() validate.TournamentConfig {
	return validate.TournamentConfig{
		Name:   "Cup",
		Games:  []string{"snake"},
		Format: "round-robin",
		Settings: validate.Settings{
			MaxParticipants: 2,
			NormalizeScores: true,
		},
	}
}

func TestCreateThenGet(t *testing.T) {
	f := setupManager(t)

	cfg := validate.TournamentConfig{
		Name:   "Autumn Open",
		Games:  []string{"snake", "tetris"},
		Format: "elimination",
		Settings: validate.Settings{
			MaxParticipants: 16,
			NormalizeScores: true,
			AutoAdvance:     true,
		},
	}
	created := f.manager.Create(cfg)
	require.NotNil(t, created)

	got := f.manager.Get(created.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Autumn Open", got.Name)
	assert.Equal(t, []string{"snake", "tetris"}, got.Games)
	assert.Equal(t, models.FormatElimination, got.Format)
	assert.Equal(t, 16, got.Settings.MaxParticipants)
	assert.True(t, got.Settings.NormalizeScores)
	assert.True(t, got.Settings.AutoAdvance)
	assert.Equal(t, models.StatusCreated, got.Status)
	assert.Equal(t, 1, got.Version)

	assert.Len(t, f.bus.ByType(events.TypeCreated), 1)
	assert.Equal(t, 1, f.metrics.TournamentsCreatedCount)
}

func TestCreateInvalidConfigLeavesStorageUntouched(t *testing.T) {
	f := setupManager(t)

	cfg := cupConfig()
	cfg.Games = []string{"not-a-game"}
	assert.Nil(t, f.manager.Create(cfg))

	assert.Empty(t, f.manager.ListAll(tournament.ListFilter{}))
	require.Len(t, f.bus.ByType(events.TypeError), 1)
	assert.Equal(t, "create", f.bus.ByType(events.TypeError)[0].Error.Op)
}

func TestJoinContracts(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)

	assert.True(t, f.manager.Join(created.ID, "p1", "One"))

	t.Run("duplicate join is idempotent success", func(t *testing.T) {
		assert.True(t, f.manager.Join(created.ID, "p1", "One"))
		got := f.manager.Get(created.ID)
		assert.Len(t, got.Participants, 1)
	})

	t.Run("capacity is enforced", func(t *testing.T) {
		assert.True(t, f.manager.Join(created.ID, "p2", "Two"))
		assert.False(t, f.manager.Join(created.ID, "p3", "Three"))
		got := f.manager.Get(created.ID)
		assert.LessOrEqual(t, len(got.Participants), got.Settings.MaxParticipants)
	})

	t.Run("placeholder ranks follow insertion order", func(t *testing.T) {
		got := f.manager.Get(created.ID)
		assert.Equal(t, 1, got.Participants[0].Rank)
		assert.Equal(t, 2, got.Participants[1].Rank)
	})

	t.Run("join after start is rejected", func(t *testing.T) {
		require.True(t, f.manager.Start(created.ID))
		assert.False(t, f.manager.Join(created.ID, "p4", "Four"))
	})
}

func TestStateMachine(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)

	t.Run("start with one participant fails and leaves status created", func(t *testing.T) {
		require.True(t, f.manager.Join(created.ID, "p1", "One"))
		assert.False(t, f.manager.Start(created.ID))
		assert.Equal(t, models.StatusCreated, f.manager.Get(created.ID).Status)
	})

	t.Run("start succeeds after second join", func(t *testing.T) {
		require.True(t, f.manager.Join(created.ID, "p2", "Two"))
		assert.True(t, f.manager.Start(created.ID))
		got := f.manager.Get(created.ID)
		assert.Equal(t, models.StatusActive, got.Status)
		assert.NotZero(t, got.StartedAt)
	})

	t.Run("no transition is reversible", func(t *testing.T) {
		assert.False(t, f.manager.Start(created.ID))
		require.True(t, f.manager.Complete(created.ID))
		assert.False(t, f.manager.Complete(created.ID))
		assert.False(t, f.manager.Start(created.ID))
		assert.Equal(t, models.StatusCompleted, f.manager.Get(created.ID).Status)
	})

	t.Run("complete before start fails", func(t *testing.T) {
		other := f.manager.Create(cupConfig())
		require.NotNil(t, other)
		assert.False(t, f.manager.Complete(other.ID))
	})
}

func TestCupExample(t *testing.T) {
	f := setupManager(t)

	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)
	require.True(t, f.manager.Join(created.ID, "p1", "Player One"))
	require.True(t, f.manager.Join(created.ID, "p2", "Player Two"))
	require.True(t, f.manager.Start(created.ID))
	require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 500, nil))
	require.True(t, f.manager.RecordScore(created.ID, "p2", "snake", 800, nil))
	require.True(t, f.manager.Complete(created.ID))

	board := f.manager.Leaderboard(created.ID)
	require.NotNil(t, board)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "p2", board.Entries[0].Participant)
	assert.Equal(t, 1, board.Entries[0].Position)
	assert.Equal(t, "p1", board.Entries[1].Participant)
	assert.Equal(t, 2, board.Entries[1].Position)

	got := f.manager.Get(created.ID)
	assert.NotZero(t, got.EndedAt)
	assert.Len(t, f.bus.ByType(events.TypeCompleted), 1)
}

func TestRecordScore(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)
	require.True(t, f.manager.Join(created.ID, "p1", "One"))
	require.True(t, f.manager.Join(created.ID, "p2", "Two"))

	t.Run("rejected before start", func(t *testing.T) {
		assert.False(t, f.manager.RecordScore(created.ID, "p1", "snake", 100, nil))
	})

	require.True(t, f.manager.Start(created.ID))

	t.Run("normalizes and appends to games completed", func(t *testing.T) {
		require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 500, nil))
		got := f.manager.Get(created.ID)
		p := got.Participants[0]
		assert.Equal(t, 500.0, p.RawScores["snake"])
		assert.InDelta(t, 0.25, p.NormalizedScores["snake"], 1e-9)
		assert.Equal(t, []string{"snake"}, p.GamesCompleted)
		assert.InDelta(t, 0.25, p.TotalScore, 1e-9)
	})

	t.Run("repeat report keeps the best run", func(t *testing.T) {
		require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 300, nil))
		got := f.manager.Get(created.ID)
		p := got.Participants[0]
		assert.Equal(t, 500.0, p.RawScores["snake"])
		assert.Equal(t, []string{"snake"}, p.GamesCompleted)

		require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 900, nil))
		p = f.manager.Get(created.ID).Participants[0]
		assert.Equal(t, 900.0, p.RawScores["snake"])
	})

	t.Run("unknown game for this tournament is rejected", func(t *testing.T) {
		assert.False(t, f.manager.RecordScore(created.ID, "p1", "tetris", 100, nil))
	})

	t.Run("unknown participant is rejected", func(t *testing.T) {
		assert.False(t, f.manager.RecordScore(created.ID, "ghost", "snake", 100, nil))
	})
}

func TestLeaveRecomputesRanks(t *testing.T) {
	f := setupManager(t)
	cfg := cupConfig()
	cfg.Settings.MaxParticipants = 4
	created := f.manager.Create(cfg)
	require.NotNil(t, created)

	for i, id := range []string{"p1", "p2", "p3"} {
		require.True(t, f.manager.Join(created.ID, id, fmt.Sprintf("Player %d", i+1)))
	}
	require.True(t, f.manager.Start(created.ID))
	require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 200, nil))
	require.True(t, f.manager.RecordScore(created.ID, "p2", "snake", 900, nil))
	require.True(t, f.manager.RecordScore(created.ID, "p3", "snake", 500, nil))

	require.True(t, f.manager.Leave(created.ID, "p2"))

	got := f.manager.Get(created.ID)
	require.Len(t, got.Participants, 2)
	ranks := map[string]int{}
	for _, p := range got.Participants {
		ranks[p.ID] = p.Rank
	}
	assert.Equal(t, 2, ranks["p1"])
	assert.Equal(t, 1, ranks["p3"])

	t.Run("leave after complete is rejected", func(t *testing.T) {
		require.True(t, f.manager.Complete(created.ID))
		assert.False(t, f.manager.Leave(created.ID, "p1"))
	})
}

func TestCompleteFreezesRanksAndAppendsLedger(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)
	require.True(t, f.manager.Join(created.ID, "p1", "One"))
	require.True(t, f.manager.Join(created.ID, "p2", "Two"))
	require.True(t, f.manager.Start(created.ID))
	require.True(t, f.manager.RecordScore(created.ID, "p1", "snake", 1500, nil))
	require.True(t, f.manager.RecordScore(created.ID, "p2", "snake", 100, nil))
	require.True(t, f.manager.Complete(created.ID))

	got := f.manager.Get(created.ID)
	ranks := map[string]int{}
	for _, p := range got.Participants {
		ranks[p.ID] = p.Rank
	}
	assert.Equal(t, map[string]int{"p1": 1, "p2": 2}, ranks)

	var ledger models.Ledger
	found, err := f.store.Get(storage.KeyLedger, &ledger)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{created.ID}, ledger.CompletedIDs)
	assert.Equal(t, 1, ledger.TotalTournaments)
	assert.Equal(t, 2, ledger.TotalParticipants)
}

func TestDelete(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)

	t.Run("deletes a created tournament", func(t *testing.T) {
		assert.True(t, f.manager.Delete(created.ID))
		assert.Nil(t, f.manager.Get(created.ID))
		assert.Len(t, f.bus.ByType(events.TypeDeleted), 1)
	})

	t.Run("completed tournaments cannot be deleted", func(t *testing.T) {
		done := f.manager.Create(cupConfig())
		require.NotNil(t, done)
		require.True(t, f.manager.Join(done.ID, "p1", "One"))
		require.True(t, f.manager.Join(done.ID, "p2", "Two"))
		require.True(t, f.manager.Start(done.ID))
		require.True(t, f.manager.Complete(done.ID))

		assert.False(t, f.manager.Delete(done.ID))
		assert.NotNil(t, f.manager.Get(done.ID))
	})
}

func TestUpdate(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)

	t.Run("renames", func(t *testing.T) {
		name := "Winter Cup"
		updated := f.manager.Update(created.ID, tournament.Patch{Name: &name})
		require.NotNil(t, updated)
		assert.Equal(t, "Winter Cup", updated.Name)
		assert.Equal(t, 2, updated.Version)
	})

	t.Run("multibyte names count runes", func(t *testing.T) {
		name := strings.Repeat("ü", validate.MaxNameLength)
		updated := f.manager.Update(created.ID, tournament.Patch{Name: &name})
		require.NotNil(t, updated)
		assert.Equal(t, name, updated.Name)

		long := strings.Repeat("ü", validate.MaxNameLength+1)
		assert.Nil(t, f.manager.Update(created.ID, tournament.Patch{Name: &long}))
	})

	t.Run("capacity cannot drop below current participants", func(t *testing.T) {
		require.True(t, f.manager.Join(created.ID, "p1", "One"))
		require.True(t, f.manager.Join(created.ID, "p2", "Two"))
		bad := created.Settings
		bad.MaxParticipants = 2
		updated := f.manager.Update(created.ID, tournament.Patch{Settings: &bad})
		require.NotNil(t, updated)

		bad.MaxParticipants = 1
		assert.Nil(t, f.manager.Update(created.ID, tournament.Patch{Settings: &bad}))
	})

	t.Run("completed tournaments are frozen", func(t *testing.T) {
		require.True(t, f.manager.Start(created.ID))
		require.True(t, f.manager.Complete(created.ID))
		name := "Too Late"
		assert.Nil(t, f.manager.Update(created.ID, tournament.Patch{Name: &name}))
	})
}

func TestListAll(t *testing.T) {
	f := setupManager(t)

	cup := f.manager.Create(cupConfig())
	require.NotNil(t, cup)

	elim := cupConfig()
	elim.Name = "Knockout"
	elim.Format = "elimination"
	elim.Games = []string{"tetris"}
	knockout := f.manager.Create(elim)
	require.NotNil(t, knockout)

	assert.Len(t, f.manager.ListAll(tournament.ListFilter{}), 2)
	assert.Len(t, f.manager.ListAll(tournament.ListFilter{Format: models.FormatElimination}), 1)
	assert.Len(t, f.manager.ListAll(tournament.ListFilter{GameID: "snake"}), 1)
	assert.Len(t, f.manager.ListAll(tournament.ListFilter{Status: models.StatusActive}), 0)
}

func TestStatusView(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)
	require.True(t, f.manager.Join(created.ID, "p1", "One"))

	view := f.manager.Status(created.ID)
	require.NotNil(t, view)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, models.StatusCreated, view.Status)
	assert.Equal(t, 1, view.ParticipantCount)
	assert.Equal(t, 2, view.MaxParticipants)
	assert.Equal(t, 1, view.GameCount)

	assert.Nil(t, f.manager.Status("missing"))
}

func TestConcurrentJoinsKeepEveryParticipant(t *testing.T) {
	f := setupManager(t)

	cfg := cupConfig()
	cfg.Settings.MaxParticipants = 8
	created := f.manager.Create(cfg)
	require.NotNil(t, created)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", i+1)
			results[i] = f.manager.Join(created.ID, id, fmt.Sprintf("Player %d", i+1))
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "join %d failed", i+1)
	}

	// Every join that reported success must be in the stored record.
	got := f.manager.Get(created.ID)
	require.NotNil(t, got)
	require.Len(t, got.Participants, 8)
	seen := make(map[string]bool, 8)
	for _, p := range got.Participants {
		seen[p.ID] = true
	}
	assert.Len(t, seen, 8)
}

func TestStorageFailureReturnsSentinel(t *testing.T) {
	f := setupManager(t)
	created := f.manager.Create(cupConfig())
	require.NotNil(t, created)

	f.store.SetFunc = func(key string, v any) error {
		return fmt.Errorf("disk full")
	}

	assert.False(t, f.manager.Join(created.ID, "p1", "One"))
	require.NotEmpty(t, f.bus.ByType(events.TypeError))

	// Prior state intact: the failed write never landed.
	f.store.SetFunc = nil
	assert.Empty(t, f.manager.Get(created.ID).Participants)
}
