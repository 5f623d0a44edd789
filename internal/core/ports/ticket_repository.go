package ports

import (
	"context"
	"time"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// TicketOwner restricts ticket queries to one owner. The zero value means no
// restriction.
type TicketOwner struct {
	UserID string
	Email  string
}

// IsZero reports whether no owner restriction applies.
func (o TicketOwner) IsZero() bool {
	return o.UserID == "" && o.Email == ""
}

// TicketRepository defines persistence operations for tickets. Every mutation
// is one write and returns the ticket as stored after it.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	// List returns tickets in creation order, scoped to owner when set.
	List(ctx context.Context, owner TicketOwner) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, at time.Time) (*domain.Ticket, error)
	UpdateAssignee(ctx context.Context, id, assigneeID, assigneeEmail string, at time.Time) (*domain.Ticket, error)
	// AppendReply pushes reply onto the thread. A non-empty status is set in
	// the same update.
	AppendReply(ctx context.Context, id string, reply domain.Reply, status domain.TicketStatus) (*domain.Ticket, error)
}

// MessageRepository stores ticket_messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// ListByTicket returns messages oldest first. Internal messages are
	// omitted unless includeInternal is set.
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Message, error)
}

// StatsRepository runs the dashboard aggregations.
type StatsRepository interface {
	CountTicketsBy(ctx context.Context, field string, owner TicketOwner) (map[string]int64, error)
	CountUnassignedOpen(ctx context.Context, owner TicketOwner) (int64, error)
	CountQuestions(ctx context.Context) (int64, error)
}
