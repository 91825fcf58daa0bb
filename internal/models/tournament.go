package models

// Status represents the lifecycle state of a tournament. Transitions are
// monotonic: created -> active -> completed, never backwards.
type Status string

const (
	StatusCreated   Status = "created"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Format is the competition format of a tournament.
type Format string

const (
	FormatRoundRobin  Format = "round-robin"
	FormatElimination Format = "elimination"
)

// Settings control capacity and scoring behaviour for one tournament.
type Settings struct {
	MaxParticipants int  `json:"max_participants"`
	NormalizeScores bool `json:"normalize_scores"`
	AutoAdvance     bool `json:"auto_advance"`
}

// Tournament is the aggregate owned by the tournament manager. It is
// persisted as part of the tournaments map under a single store record.
type Tournament struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Games        []string      `json:"games"`
	Format       Format        `json:"format"`
	Participants []Participant `json:"participants"`
	Status       Status        `json:"status"`
	StartedAt    int64         `json:"started_at,omitempty"`
	EndedAt      int64         `json:"ended_at,omitempty"`
	Settings     Settings      `json:"settings"`
	Version      int           `json:"version"`
	CreatedAt    int64         `json:"created_at"`
	UpdatedAt    int64         `json:"updated_at"`
}

// Participant is one competitor inside a tournament.
type Participant struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	RawScores        map[string]float64 `json:"raw_scores"`
	NormalizedScores map[string]float64 `json:"normalized_scores"`
	TotalScore       float64            `json:"total_score"`
	// Rank is a cached derived value: consistent with a stable descending
	// sort by total score at the moment of the last recomputation.
	Rank           int      `json:"rank"`
	GamesCompleted []string `json:"games_completed"`
	JoinedAt       int64    `json:"joined_at"`
}

// Clone returns a deep copy so mutations never leak across module
// boundaries; the store is the only place true mutation happens.
func (t *Tournament) Clone() *Tournament {
	out := *t
	out.Games = append([]string(nil), t.Games...)
	out.Participants = make([]Participant, len(t.Participants))
	for i := range t.Participants {
		out.Participants[i] = t.Participants[i].Clone()
	}
	return &out
}

// Clone returns a deep copy of the participant.
func (p Participant) Clone() Participant {
	out := p
	out.RawScores = copyScores(p.RawScores)
	out.NormalizedScores = copyScores(p.NormalizedScores)
	out.GamesCompleted = append([]string(nil), p.GamesCompleted...)
	return out
}

// HasCompleted reports whether the participant already finished a game.
func (p Participant) HasCompleted(gameID string) bool {
	for _, id := range p.GamesCompleted {
		if id == gameID {
			return true
		}
	}
	return false
}

// Winner returns the rank-1 participant of a completed tournament.
func (t *Tournament) Winner() (Participant, bool) {
	for _, p := range t.Participants {
		if p.Rank == 1 {
			return p, true
		}
	}
	return Participant{}, false
}

// Duration is the tournament's active timespan in seconds, 0 until completed.
func (t *Tournament) Duration() int64 {
	if t.StartedAt == 0 || t.EndedAt == 0 {
		return 0
	}
	return t.EndedAt - t.StartedAt
}

// HasGame reports whether the tournament includes a game.
func (t *Tournament) HasGame(gameID string) bool {
	for _, id := range t.Games {
		if id == gameID {
			return true
		}
	}
	return false
}

func copyScores(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
