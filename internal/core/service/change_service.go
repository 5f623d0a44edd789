package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/metrics"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, ticketID string, kind domain.ChangeKind, at time.Time) (bool, error)
	Mark(ctx context.Context, ticketID string, kind domain.ChangeKind, at time.Time) error
}

type changeService struct {
	eventRepo ports.EventRepository
	feed      ports.ChangeFeed
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewChangeService returns a ChangeService implementation.
func NewChangeService(
	eventRepo ports.EventRepository,
	feed ports.ChangeFeed,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.ChangeService {
	return &changeService{
		eventRepo: eventRepo,
		feed:      feed,
		dedup:     dedup,
		log:       log,
	}
}

// Process deduplicates, audits and broadcasts a single ticket change. The
// ticket write itself has already happened.
func (s *changeService) Process(ctx context.Context, change domain.TicketChange) error {
	start := time.Now()
	kind := string(change.Kind)

	// 1. Idempotency check, silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, change.TicketID, change.Kind, change.At)
	switch {
	case err != nil:
		metrics.ChangesDedupTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("ticket", change.TicketID).Msg("dedup check failed, processing anyway")
	case isDup:
		metrics.ChangesDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("ticket", change.TicketID).Str("kind", kind).Msg("duplicate change skipped")
		return nil
	default:
		metrics.ChangesDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. Mark before side effects.
	if markErr := s.dedup.Mark(ctx, change.TicketID, change.Kind, change.At); markErr != nil {
		s.log.Warn().Err(markErr).Str("ticket", change.TicketID).Msg("failed to set dedup key")
	}

	// 3. Audit trail, non-fatal.
	if err := s.eventRepo.InsertChange(ctx, &change); err != nil {
		metrics.ChangesErrorsTotal.WithLabelValues("audit_failed").Inc()
		s.log.Warn().Err(err).Str("ticket", change.TicketID).Msg("failed to insert audit event")
	}

	// 4. Live feed.
	if err := s.feed.Publish(ctx, change); err != nil {
		metrics.ChangesErrorsTotal.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("process change: publish: %w", err)
	}

	metrics.ChangesProcessedTotal.WithLabelValues(kind).Inc()
	metrics.ChangeProcessingDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("ticket", change.TicketID).
		Str("kind", kind).
		Str("actor", change.Actor).
		Msg("change processed")

	return nil
}
