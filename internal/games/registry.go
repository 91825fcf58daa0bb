// Package games is the catalog of arcade games the engine can score.
// The games themselves run elsewhere; the registry only carries the
// identity and expected score range needed for normalization.
package games

import "sort"

// Spec describes one game's scoring envelope.
type Spec struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`
	// MaxLevel bounds the level metadata a game may report; 0 means the
	// game has no level progression.
	MaxLevel int `json:"max_level,omitempty"`
}

// Registry maps game ids to their specs.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry creates a registry seeded with the given specs.
func NewRegistry(specs ...Spec) *Registry {
	r := &Registry{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		r.specs[s.ID] = s
	}
	return r
}

// Default returns the registry seeded with the stock arcade catalog.
func Default() *Registry {
	return NewRegistry(
		Spec{ID: "snake", Name: "Snake", MinScore: 0, MaxScore: 2000, MaxLevel: 10},
		Spec{ID: "tetris", Name: "Tetris", MinScore: 0, MaxScore: 100000, MaxLevel: 20},
		Spec{ID: "pong", Name: "Pong", MinScore: 0, MaxScore: 21},
		Spec{ID: "breakout", Name: "Breakout", MinScore: 0, MaxScore: 5000, MaxLevel: 8},
		Spec{ID: "space-invaders", Name: "Space Invaders", MinScore: 0, MaxScore: 10000, MaxLevel: 12},
		Spec{ID: "pacman", Name: "Pac-Man", MinScore: 0, MaxScore: 50000, MaxLevel: 16},
	)
}

// Lookup returns the spec for a game id.
func (r *Registry) Lookup(id string) (Spec, bool) {
	s, ok := r.specs[id]
	return s, ok
}

// Known reports whether a game id is in the catalog.
func (r *Registry) Known(id string) bool {
	_, ok := r.specs[id]
	return ok
}

// All returns the catalog sorted by id.
func (r *Registry) All() []Spec {
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
