// Package validate holds the pure structural checks applied to tournament
// configs and participant records before they reach the store.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength      = 64
	MaxGames           = 16
	MaxParticipantsCap = 512
)

// Result is the outcome of a validation pass. Violations are reported as
// values, never as panics or errors.
type Result struct {
	Valid  bool     `json:"is_valid"`
	Errors []string `json:"errors,omitempty"`
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) finish() Result {
	r.Valid = len(r.Errors) == 0
	return *r
}

// TournamentConfig is the caller-supplied shape checked by Config.
type TournamentConfig struct {
	Name     string
	Games    []string
	Format   string
	Settings Settings
}

// Settings mirror the tournament settings block.
type Settings struct {
	MaxParticipants int
	NormalizeScores bool
	AutoAdvance     bool
}

// KnownFormats are the supported tournament formats.
var KnownFormats = []string{"round-robin", "elimination"}

// Config verifies a tournament config against the structural rules.
// knownGame reports whether a game id exists in the registry.
func Config(cfg TournamentConfig, knownGame func(id string) bool) Result {
	var res Result

	name := SanitizeName(cfg.Name)
	if name == "" {
		res.addError("tournament name must not be empty")
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		res.addError("tournament name exceeds %d characters", MaxNameLength)
	}

	if len(cfg.Games) == 0 {
		res.addError("tournament requires at least one game")
	} else if len(cfg.Games) > MaxGames {
		res.addError("tournament supports at most %d games", MaxGames)
	}
	for _, id := range cfg.Games {
		if knownGame != nil && !knownGame(id) {
			res.addError("unknown game id %q", id)
		}
	}

	if !isKnownFormat(cfg.Format) {
		res.addError("unknown format %q (want one of %s)", cfg.Format, strings.Join(KnownFormats, ", "))
	}

	if cfg.Settings.MaxParticipants < 2 {
		res.addError("max participants must be at least 2")
	} else if cfg.Settings.MaxParticipants > MaxParticipantsCap {
		res.addError("max participants exceeds cap of %d", MaxParticipantsCap)
	}

	return res.finish()
}

// Participant verifies a participant record.
func Participant(id, name string) Result {
	var res Result

	if strings.TrimSpace(id) == "" {
		res.addError("participant id must not be empty")
	}
	cleaned := SanitizeName(name)
	if cleaned == "" {
		res.addError("participant name must not be empty")
	} else if utf8.RuneCountInString(cleaned) > MaxNameLength {
		res.addError("participant name exceeds %d characters", MaxNameLength)
	}

	return res.finish()
}

// SanitizeName trims whitespace and strips control characters.
func SanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

func isKnownFormat(format string) bool {
	for _, f := range KnownFormats {
		if f == format {
			return true
		}
	}
	return false
}
