package ports

import (
	"context"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// EventRepository persists the ticket_events audit trail.
type EventRepository interface {
	InsertChange(ctx context.Context, change *domain.TicketChange) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketChange, error)
}
