package notify

import (
	"context"

	"orderflow/internal/entities"
)

// Publisher is anything that accepts a committed-change event list.
type Publisher interface {
	Publish(ctx context.Context, events []entities.OrderEvent)
}

// Fanout hands one event list to several publishers, e.g. the WebSocket
// registry and the Kafka integration producer.
type Fanout struct {
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, events []entities.OrderEvent) {
	for _, publisher := range f.publishers {
		publisher.Publish(ctx, events)
	}
}
