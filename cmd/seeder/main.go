package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/config"
	"github.com/quarterline/arcade-circuit/internal/database"
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/tournament"
	"github.com/quarterline/arcade-circuit/internal/validate"
)

// Seeds the store with a handful of finished demo tournaments so the
// history and analytics endpoints have something to chew on.
func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := storage.New(db, storage.Options{
		QuotaBytes:  cfg.Storage.QuotaBytes,
		WarnPercent: cfg.Storage.WarnPercent,
	})
	registry := games.Default()
	aggregator := scoring.New(registry)
	bus := events.NewBus()
	defer bus.Close()
	manager := tournament.New(store, aggregator, registry, bus, metrics.NewService())

	players := []struct{ id, name string }{
		{"player-1", "Seeder Player A"},
		{"player-2", "Seeder Player B"},
		{"player-3", "Seeder Player C"},
		{"player-4", "Seeder Player D"},
	}
	catalog := [][]string{
		{"snake"},
		{"tetris", "pong"},
		{"breakout", "space-invaders", "pacman"},
	}

	for i, gameIDs := range catalog {
		created := manager.Create(validate.TournamentConfig{
			Name:   fmt.Sprintf("Seeded Circuit %d", i+1),
			Games:  gameIDs,
			Format: "round-robin",
			Settings: validate.Settings{
				MaxParticipants: len(players),
				NormalizeScores: true,
			},
		})
		if created == nil {
			log.Fatalf("Failed to create seeded tournament %d", i+1)
		}

		for _, p := range players {
			if !manager.Join(created.ID, p.id, p.name) {
				log.Fatalf("Failed to join %s to %s", p.id, created.ID)
			}
		}
		if !manager.Start(created.ID) {
			log.Fatalf("Failed to start %s", created.ID)
		}

		for _, gameID := range gameIDs {
			spec, _ := registry.Lookup(gameID)
			for _, p := range players {
				raw := rand.Float64() * spec.MaxScore
				if !manager.RecordScore(created.ID, p.id, gameID, raw, nil) {
					log.Fatalf("Failed to record %s score for %s", gameID, p.id)
				}
			}
		}

		if !manager.Complete(created.ID) {
			log.Fatalf("Failed to complete %s", created.ID)
		}
		log.Info("Seeded tournament", "id", created.ID, "games", gameIDs)
	}

	log.Info("Seeder finished successfully.")
}
