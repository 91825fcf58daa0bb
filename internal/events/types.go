package events

// Type identifies a lifecycle event emitted by the tournament manager.
type Type string

const (
	TypeCreated         Type = "created"
	TypeUpdated         Type = "updated"
	TypeDeleted         Type = "deleted"
	TypeParticipantJoin Type = "participant-joined"
	TypeParticipantLeft Type = "participant-left"
	TypeStarted         Type = "started"
	TypeCompleted       Type = "completed"
	TypeError           Type = "error"
)

// AllTypes lists every lifecycle event type.
var AllTypes = []Type{
	TypeCreated,
	TypeUpdated,
	TypeDeleted,
	TypeParticipantJoin,
	TypeParticipantLeft,
	TypeStarted,
	TypeCompleted,
	TypeError,
}

// Event is the payload delivered to subscribers. Entity carries the affected
// tournament (or a projection of it); Error is set only for TypeError.
// Delivery order is guaranteed within a single tournament's own sequence,
// not across independent tournaments.
type Event struct {
	Type         Type   `msgpack:"type"`
	TournamentID string `msgpack:"tournament_id"`
	Entity       any    `msgpack:"entity,omitempty"`
	Error        *Error `msgpack:"error,omitempty"`
	OccurredAt   int64  `msgpack:"occurred_at"`
}

// Error describes a failed operation surfaced as an event rather than a fault.
type Error struct {
	Op      string `msgpack:"op"`
	Message string `msgpack:"message"`
}
