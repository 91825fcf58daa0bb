package validate_test

import (
	"strings"
	"testing"

	"github.com/quarterline/arcade-circuit/internal/validate"
	"github.com/stretchr/testify/assert"
)

func knownGames(ids ...string) func(string) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func validConfig() validate.TournamentConfig {
	return validate.TournamentConfig{
		Name:   "Friday Cup",
		Games:  []string{"snake", "tetris"},
		Format: "round-robin",
		Settings: validate.Settings{
			MaxParticipants: 8,
			NormalizeScores: true,
		},
	}
}

func TestConfig(t *testing.T) {
	games := knownGames("snake", "tetris")

	t.Run("valid config passes", func(t *testing.T) {
		res := validate.Config(validConfig(), games)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Name = "   "
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors[0], "name must not be empty")
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Name = strings.Repeat("a", validate.MaxNameLength+1)
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
	})

	t.Run("name length counts runes not bytes", func(t *testing.T) {
		// 64 multibyte characters, well over 64 bytes.
		cfg := validConfig()
		cfg.Name = strings.Repeat("ß", validate.MaxNameLength)
		res := validate.Config(cfg, games)
		assert.True(t, res.Valid)

		cfg.Name = strings.Repeat("ß", validate.MaxNameLength+1)
		res = validate.Config(cfg, games)
		assert.False(t, res.Valid)
	})

	t.Run("no games rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Games = nil
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
	})

	t.Run("unknown game rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Games = []string{"snake", "quake"}
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors[0], `"quake"`)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Format = "swiss"
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
	})

	t.Run("capacity below two rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Settings.MaxParticipants = 1
		res := validate.Config(cfg, games)
		assert.False(t, res.Valid)
	})

	t.Run("violations accumulate", func(t *testing.T) {
		res := validate.Config(validate.TournamentConfig{}, games)
		assert.False(t, res.Valid)
		assert.GreaterOrEqual(t, len(res.Errors), 3)
	})
}

func TestParticipant(t *testing.T) {
	res := validate.Participant("p1", "Ada")
	assert.True(t, res.Valid)

	res = validate.Participant("", "Ada")
	assert.False(t, res.Valid)

	res = validate.Participant("p1", " \t ")
	assert.False(t, res.Valid)

	res = validate.Participant("p1", strings.Repeat("é", validate.MaxNameLength))
	assert.True(t, res.Valid)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Ada", validate.SanitizeName("  Ada "))
	assert.Equal(t, "AdaLovelace", validate.SanitizeName("Ada\x00Lovelace\n"))
	assert.Equal(t, "", validate.SanitizeName("\x01\x02"))
}
