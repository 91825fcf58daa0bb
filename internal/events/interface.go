package events

// Bus is the publish/subscribe surface for tournament lifecycle events.
// Publishing is fire-and-forget; a slow subscriber never blocks a mutation.
type Bus interface {
	Publish(evt Event) error
	// Subscribe delivers events of the given types (all types when none
	// are given) on the returned channel until the unsubscribe func is
	// called, which also closes the channel.
	Subscribe(types ...Type) (<-chan Event, func(), error)
	Close() error
}
