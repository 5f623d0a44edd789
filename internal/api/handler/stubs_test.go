package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/api/middleware"
	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
)

var (
	endUser = domain.Session{UserID: "u-1", Email: "alice@example.com", Role: domain.RoleEndUser}
	agent   = domain.Session{UserID: "u-2", Email: "agent@example.com", Role: domain.RoleSupportAgent}
	admin   = domain.Session{UserID: "u-3", Email: "admin@example.com", Role: domain.RoleAdmin}
)

// newContext builds an echo context with the validator installed and, when
// sess is non-nil, a resolved session.
func newContext(method, target, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(middleware.KeySession, *sess)
	}
	return c, rec
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, jti string, expiresAt time.Time) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.logoutFn(ctx, jti, expiresAt)
}

type stubTicketService struct {
	createFn       func(ctx context.Context, s domain.Session, in ports.CreateTicketInput) (*domain.Ticket, error)
	getFn          func(ctx context.Context, s domain.Session, id string) (*domain.Ticket, error)
	listFn         func(ctx context.Context, s domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error)
	listMineFn     func(ctx context.Context, s domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error)
	changeStatusFn func(ctx context.Context, s domain.Session, id string, st domain.TicketStatus) (*domain.Ticket, error)
	assignFn       func(ctx context.Context, s domain.Session, id string, in ports.AssignInput) (*domain.Ticket, error)
	replyFn        func(ctx context.Context, s domain.Session, id, message string) (*domain.Ticket, error)
	addMessageFn   func(ctx context.Context, s domain.Session, id string, in ports.MessageInput) (*domain.Message, error)
	listMessagesFn func(ctx context.Context, s domain.Session, id string) ([]domain.Message, error)
	historyFn      func(ctx context.Context, s domain.Session, id string) ([]domain.TicketChange, error)
}

func (s *stubTicketService) Create(ctx context.Context, sess domain.Session, in ports.CreateTicketInput) (*domain.Ticket, error) {
	return s.createFn(ctx, sess, in)
}

func (s *stubTicketService) Get(ctx context.Context, sess domain.Session, id string) (*domain.Ticket, error) {
	return s.getFn(ctx, sess, id)
}

func (s *stubTicketService) List(ctx context.Context, sess domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error) {
	return s.listFn(ctx, sess, c)
}

func (s *stubTicketService) ListMine(ctx context.Context, sess domain.Session, c ticketfilter.Criteria) (*ports.TicketList, error) {
	return s.listMineFn(ctx, sess, c)
}

func (s *stubTicketService) ChangeStatus(ctx context.Context, sess domain.Session, id string, st domain.TicketStatus) (*domain.Ticket, error) {
	return s.changeStatusFn(ctx, sess, id, st)
}

func (s *stubTicketService) Assign(ctx context.Context, sess domain.Session, id string, in ports.AssignInput) (*domain.Ticket, error) {
	return s.assignFn(ctx, sess, id, in)
}

func (s *stubTicketService) Reply(ctx context.Context, sess domain.Session, id, message string) (*domain.Ticket, error) {
	return s.replyFn(ctx, sess, id, message)
}

func (s *stubTicketService) AddMessage(ctx context.Context, sess domain.Session, id string, in ports.MessageInput) (*domain.Message, error) {
	return s.addMessageFn(ctx, sess, id, in)
}

func (s *stubTicketService) ListMessages(ctx context.Context, sess domain.Session, id string) ([]domain.Message, error) {
	return s.listMessagesFn(ctx, sess, id)
}

func (s *stubTicketService) History(ctx context.Context, sess domain.Session, id string) ([]domain.TicketChange, error) {
	return s.historyFn(ctx, sess, id)
}

func sampleTicket(id string) *domain.Ticket {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Ticket{
		ID:          id,
		Subject:     "Printer jam",
		Description: "Tray 2 keeps jamming",
		Category:    "hardware",
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusOpen,
		UserID:      endUser.UserID,
		UserEmail:   endUser.Email,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}
