package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// All events share one topic. A subscriber reads a single ordered stream
// and filters by type, so a tournament's own sequence is never reordered
// across event types.
const topic = "arcade.events"

// bus routes lifecycle events over an in-process watermill channel.
type bus struct {
	ch *gochannel.GoChannel
}

// NewBus creates a new in-process event bus.
func NewBus() Bus {
	return &bus{
		ch: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, newLoggerAdapter()),
	}
}

func (b *bus) Publish(evt Event) error {
	if evt.OccurredAt == 0 {
		evt.OccurredAt = time.Now().Unix()
	}
	data, err := msgpack.Marshal(&evt)
	if err != nil {
		log.Error("Failed to encode event", "type", evt.Type, "error", err)
		return fmt.Errorf("failed to encode %s event: %w", evt.Type, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.ch.Publish(topic, msg); err != nil {
		log.Error("Failed to publish event", "type", evt.Type, "tournamentID", evt.TournamentID, "error", err)
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}
	return nil
}

func (b *bus) Subscribe(types ...Type) (<-chan Event, func(), error) {
	want := make(map[Type]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	msgs, err := b.ch.Subscribe(ctx, topic)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}

	out := make(chan Event, 64)
	go func() {
		defer close(out)
		for msg := range msgs {
			var evt Event
			if err := msgpack.Unmarshal(msg.Payload, &evt); err != nil {
				log.Error("Failed to decode event", "error", err)
				msg.Ack()
				continue
			}
			msg.Ack()
			if len(want) > 0 && !want[evt.Type] {
				continue
			}
			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(cancel)
	}
	return out, unsubscribe, nil
}

func (b *bus) Close() error {
	return b.ch.Close()
}
