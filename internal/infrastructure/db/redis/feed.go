package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// ChangesChannel is the pub/sub channel carrying ticket changes.
const ChangesChannel = "quickdesk:ticket_events"

const subscriptionBuffer = 10

// Feed broadcasts ticket changes over Redis pub/sub. Delivery is at most once;
// a subscriber that falls behind may miss changes.
type Feed struct {
	client  *redis.Client
	channel string
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{client: client, channel: ChangesChannel}
}

// Publish sends the change as JSON to every current subscriber.
func (f *Feed) Publish(ctx context.Context, change domain.TicketChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscribe returns a live subscription. It is confirmed by the server before
// Subscribe returns. Cancelling ctx or calling Close ends it and closes the
// Events and Errors channels.
func (f *Feed) Subscribe(ctx context.Context) (ports.TicketSubscription, error) {
	pubsub := f.client.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", f.channel, err)
	}

	events := make(chan domain.TicketChange, subscriptionBuffer)
	errs := make(chan error, subscriptionBuffer)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(events)
		defer close(errs)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var change domain.TicketChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					select {
					case errs <- fmt.Errorf("decode ticket change: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case events <- change:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &subscription{events: events, errors: errs, cancel: cancel}, nil
}

type subscription struct {
	events <-chan domain.TicketChange
	errors <-chan error
	cancel func()
	once   sync.Once
}

func (s *subscription) Events() <-chan domain.TicketChange { return s.events }
func (s *subscription) Errors() <-chan error             { return s.errors }

// Close is safe to call more than once.
func (s *subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}
