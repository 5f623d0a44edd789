package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/metrics"
)

// TicketService performs ticket reads and single-write mutations. Each
// successful write is handed to the change queue; queue problems never fail
// the mutation.
type TicketService struct {
	repo     ports.TicketRepository
	messages ports.MessageRepository
	events   ports.EventRepository
	changes  ports.ChangeQueue
	logger   zerolog.Logger
	now      func() time.Time
}

func NewTicketService(
	repo ports.TicketRepository,
	messages ports.MessageRepository,
	events ports.EventRepository,
	changes ports.ChangeQueue,
	logger zerolog.Logger,
) *TicketService {
	return &TicketService{
		repo:     repo,
		messages: messages,
		events:   events,
		changes:  changes,
		logger:   logger,
		now:      time.Now,
	}
}

// Create files a new ticket owned by the session.
func (s *TicketService) Create(ctx context.Context, sess domain.Session, in ports.CreateTicketInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if subject == "" || description == "" || category == "" {
		return nil, fmt.Errorf("create ticket: %w: subject, description and category are required", domain.ErrInvalidInput)
	}

	priority := domain.PriorityMedium
	if p := strings.TrimSpace(in.Priority); p != "" {
		priority = domain.Priority(strings.ToLower(p))
		if !priority.Valid() {
			return nil, fmt.Errorf("create ticket: %w: unknown priority %q", domain.ErrInvalidInput, in.Priority)
		}
	}

	now := s.now().UTC()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Subject:     subject,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      domain.StatusOpen,
		Tags:        domain.NormalizeTags(in.Tags),
		UserID:      sess.UserID,
		UserEmail:   sess.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
		Replies:     []domain.Reply{},
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Msg("failed to create ticket")
		return nil, err
	}

	metrics.TicketsCreatedTotal.WithLabelValues(string(priority)).Inc()
	s.logger.Info().Str("ticket", ticket.ID).Str("user_id", sess.UserID).Msg("ticket created")
	s.notify(domain.ChangeCreated, ticket, sess)
	return ticket, nil
}

// Get returns a ticket the session may see. Non-staff sessions only see
// their own tickets.
func (s *TicketService) Get(ctx context.Context, sess domain.Session, id string) (*domain.Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(sess, t) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// List runs the filter pipeline over every ticket the session may see.
func (s *TicketService) List(ctx context.Context, sess domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error) {
	return s.list(ctx, ownerScope(sess), ticketfilter.ViewerFromSession(sess), c)
}

// ListMine is List restricted to the session's own tickets whatever its role.
func (s *TicketService) ListMine(ctx context.Context, sess domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error) {
	v := ticketfilter.ViewerFromSession(sess)
	v.Role = domain.RoleLowest
	return s.list(ctx, ports.TicketOwner{UserID: sess.UserID, Email: sess.Email}, v, c)
}

func (s *TicketService) list(ctx context.Context, owner ports.TicketOwner, v ticketfilter.Viewer, c ticketfilter.Criteria) (*ports.TicketList, error) {
	all, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	total := 0
	for i := range all {
		if ticketfilter.Visible(&all[i], v) {
			total++
		}
	}
	return &ports.TicketList{Tickets: ticketfilter.Apply(all, c, v), Total: total}, nil
}

// ChangeStatus writes any known status directly, whatever the current one is.
// Staff only.
func (s *TicketService) ChangeStatus(ctx context.Context, sess domain.Session, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !sess.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, fmt.Errorf("change status: %w: unknown status %q", domain.ErrInvalidInput, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("change status: %w", err)
	}
	s.notify(domain.ChangeStatusChanged, updated, sess)
	return updated, nil
}

// Assign sets or clears the assignee. Staff only.
func (s *TicketService) Assign(ctx context.Context, sess domain.Session, id string, in ports.AssignInput) (*domain.Ticket, error) {
	if !sess.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	updated, err := s.repo.UpdateAssignee(ctx, id,
		strings.TrimSpace(in.AssigneeID),
		strings.ToLower(strings.TrimSpace(in.AssigneeEmail)),
		s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}
	s.notify(domain.ChangeAssigned, updated, sess)
	return updated, nil
}

// Reply appends to the ticket's thread. A staff reply to an open ticket moves
// it to in_progress in the same write.
func (s *TicketService) Reply(ctx context.Context, sess domain.Session, id, message string) (*domain.Ticket, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("reply: %w: message is required", domain.ErrInvalidInput)
	}

	current, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	var status domain.TicketStatus
	if sess.Role.IsStaff() && current.Status == domain.StatusOpen {
		status = domain.StatusInProgress
	}

	reply := domain.Reply{Message: message, Sender: sess.Email, Timestamp: s.now().UTC()}
	updated, err := s.repo.AppendReply(ctx, id, reply, status)
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	s.notify(domain.ChangeReplied, updated, sess)
	return updated, nil
}

// AddMessage posts a threaded message. Only staff may post internal notes.
func (s *TicketService) AddMessage(ctx context.Context, sess domain.Session, id string, in ports.MessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("add message: %w: content is required", domain.ErrInvalidInput)
	}
	if in.IsInternal && !sess.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}

	ticket, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:          uuid.NewString(),
		TicketID:    ticket.ID,
		Author:      sess.Email,
		AuthorRole:  sess.Role,
		Content:     content,
		Timestamp:   s.now().UTC(),
		IsInternal:  in.IsInternal,
		Attachments: in.Attachments,
	}
	if msg.Attachments == nil {
		msg.Attachments = []string{}
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}
	s.notify(domain.ChangeMessageAdded, ticket, sess)
	return msg, nil
}

// ListMessages returns the thread as the session may see it.
func (s *TicketService) ListMessages(ctx context.Context, sess domain.Session, id string) ([]domain.Message, error) {
	if _, err := s.Get(ctx, sess, id); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByTicket(ctx, id, sess.Role.IsStaff())
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	visible := msgs[:0]
	for _, m := range msgs {
		if m.VisibleTo(sess.Role) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// History returns the audit trail of a ticket.
func (s *TicketService) History(ctx context.Context, sess domain.Session, id string) ([]domain.TicketChange, error) {
	if _, err := s.Get(ctx, sess, id); err != nil {
		return nil, err
	}
	changes, err := s.events.ListByTicket(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ticket history: %w", err)
	}
	return changes, nil
}

func (s *TicketService) notify(kind domain.ChangeKind, t *domain.Ticket, sess domain.Session) {
	metrics.TicketMutationsTotal.WithLabelValues(string(kind)).Inc()
	snapshot := *t
	s.changes.Enqueue(domain.TicketChange{
		Kind:     kind,
		TicketID: t.ID,
		Ticket:   &snapshot,
		Actor:    sess.Email,
		At:       s.now().UTC(),
	})
}

func canSee(sess domain.Session, t *domain.Ticket) bool {
	return sess.Role.IsStaff() || sess.Owns(t)
}

func ownerScope(sess domain.Session) ports.TicketOwner {
	if sess.Role.IsStaff() {
		return ports.TicketOwner{}
	}
	return ports.TicketOwner{UserID: sess.UserID, Email: sess.Email}
}
