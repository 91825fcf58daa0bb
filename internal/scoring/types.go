package scoring

import "github.com/quarterline/arcade-circuit/internal/games"

// Metadata optionally accompanies a raw score report. It may shift the
// normalization curve but never breaks monotonicity in the raw score.
type Metadata struct {
	Level       int     `json:"level,omitempty"`
	DurationSec float64 `json:"duration_sec,omitempty"`
}

// Aggregator normalizes per-game raw scores onto a common [0,1] scale and
// builds ranked views from them.
type Aggregator struct {
	registry *games.Registry
}

// levelWeight is the share of the normalized score contributed by level
// progress when a game reports one. Kept small so the raw score dominates.
const levelWeight = 0.1

// durationWeight is the share contributed by session length. Smaller than
// the level share: duration is a weaker signal of skill.
const durationWeight = 0.05

// referenceDurationSec is the session length at which the duration bonus
// saturates. Longer sessions earn no further credit.
const referenceDurationSec = 600.0

// fallbackMaxScore is the assumed range for games missing from the registry.
const fallbackMaxScore = 10000
