package ports

import (
	"context"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// ChangeService processes ticket changes after they have been written.
type ChangeService interface {
	Process(ctx context.Context, change domain.TicketChange) error
}

// ChangeQueue accepts changes for asynchronous processing.
type ChangeQueue interface {
	Enqueue(change domain.TicketChange)
}

// TicketSubscription is a live stream of ticket changes. Close releases it.
type TicketSubscription interface {
	Events() <-chan domain.TicketChange
	Errors() <-chan error
	Close() error
}

// ChangeFeed broadcasts ticket changes to live subscribers.
type ChangeFeed interface {
	Publish(ctx context.Context, change domain.TicketChange) error
	Subscribe(ctx context.Context) (TicketSubscription, error)
}
