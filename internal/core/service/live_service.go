package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/metrics"
)

// LiveService pushes a session's filtered ticket list whenever the ticket set
// or the criteria change.
type LiveService struct {
	tickets ports.TicketRepository
	feed    ports.ChangeFeed
	wait    time.Duration
	log     zerolog.Logger
}

func NewLiveService(tickets ports.TicketRepository, feed ports.ChangeFeed, debounce time.Duration, log zerolog.Logger) *LiveService {
	return &LiveService{tickets: tickets, feed: feed, wait: debounce, log: log}
}

func (s *LiveService) Stream(
	ctx context.Context,
	sess domain.Session,
	criteria <-chan ticketfilter.Criteria,
	emit func(ports.LiveFrame) error,
) error {
	// Subscribe before loading so no change between the two is lost.
	sub, err := s.feed.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("live stream: subscribe: %w", err)
	}
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Str("user_id", sess.UserID).Msg("failed to close live subscription")
		}
	}()

	initial, err := s.tickets.List(ctx, ownerScope(sess))
	if err != nil {
		return fmt.Errorf("live stream: initial snapshot: %w", err)
	}
	view := NewTicketView(ticketfilter.ViewerFromSession(sess), initial, ticketfilter.Default())

	metrics.LiveSubscribers.Inc()
	defer metrics.LiveSubscribers.Dec()

	if err := emit(view.Compute()); err != nil {
		return err
	}

	recompute := make(chan struct{}, 1)
	deb := ticketfilter.NewDebouncer(s.wait, func() {
		select {
		case recompute <- struct{}{}:
		default:
		}
	})
	defer deb.Stop()

	events := sub.Events()
	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-criteria:
			if !ok {
				return nil
			}
			view.SetCriteria(c)
			deb.Trigger()
		case change, ok := <-events:
			if !ok {
				return nil
			}
			if view.Apply(change) {
				deb.Trigger()
			}
		case ferr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.log.Warn().Err(ferr).Str("user_id", sess.UserID).Msg("live feed error")
		case <-recompute:
			if err := emit(view.Compute()); err != nil {
				return err
			}
		}
	}
}
