package ports

import (
	"context"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
)

// CreateTicketInput carries the create-ticket form.
type CreateTicketInput struct {
	Subject     string
	Description string
	Category    string
	Priority    string
	Tags        []string
}

// AssignInput selects the assignee. Both fields empty clears the assignment.
type AssignInput struct {
	AssigneeID    string
	AssigneeEmail string
}

// MessageInput carries a new ticket message.
type MessageInput struct {
	Content     string
	IsInternal  bool
	Attachments []string
}

// TicketList is a filtered, sorted view of the tickets a session may see.
type TicketList struct {
	Tickets []domain.Ticket
	// Total counts the tickets visible to the session before criteria apply.
	Total int
}

// TicketService defines the ticket use cases. Every operation is scoped to
// the calling session.
type TicketService interface {
	Create(ctx context.Context, s domain.Session, in CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, s domain.Session, id string) (*domain.Ticket, error)
	List(ctx context.Context, s domain.Session, c ticketfilter.Criteria) (*TicketList, error)
	ListMine(ctx context.Context, s domain.Session, c ticketfilter.Criteria) (*TicketList, error)
	ChangeStatus(ctx context.Context, s domain.Session, id string, status domain.TicketStatus) (*domain.Ticket, error)
	Assign(ctx context.Context, s domain.Session, id string, in AssignInput) (*domain.Ticket, error)
	Reply(ctx context.Context, s domain.Session, id, message string) (*domain.Ticket, error)
	AddMessage(ctx context.Context, s domain.Session, id string, in MessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, s domain.Session, id string) ([]domain.Message, error)
	History(ctx context.Context, s domain.Session, id string) ([]domain.TicketChange, error)
}

// AdminService covers user-role and category management.
type AdminService interface {
	ListUsers(ctx context.Context, s domain.Session) ([]*domain.User, error)
	ChangeRole(ctx context.Context, s domain.Session, userID string, role string) (*domain.User, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	AddCategory(ctx context.Context, s domain.Session, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, s domain.Session, id string) error
}

// Contributor is a leaderboard entry.
type Contributor struct {
	UserID       string
	Name         string
	Reputation   int
	AnswersCount int
}

// DashboardSummary aggregates ticket counts for the dashboard page.
type DashboardSummary struct {
	Total           int64
	ByStatus        map[string]int64
	ByPriority      map[string]int64
	UnassignedOpen  int64
	Questions       int64
	TopContributors []Contributor
}

type DashboardService interface {
	Summary(ctx context.Context, s domain.Session) (*DashboardSummary, error)
}

// LiveFrame is one pushed state of a live ticket list.
type LiveFrame struct {
	Tickets []domain.Ticket
	Total   int
}

// LiveService streams a session's filtered ticket list as it changes.
type LiveService interface {
	// Stream emits the initial list, then a new list after every settled
	// change of the ticket set or the criteria. It returns when ctx is done,
	// when criteria is closed, or when emit fails.
	Stream(ctx context.Context, s domain.Session, criteria <-chan ticketfilter.Criteria, emit func(LiveFrame) error) error
}
