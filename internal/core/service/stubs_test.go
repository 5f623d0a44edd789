package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // by id
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) TopByReputation(ctx context.Context, limit int) ([]*domain.User, error) {
	all, _ := r.List(ctx)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Reputation > all[j].Reputation })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type stubTokenStore struct {
	revoked map[string]time.Duration
	err     error
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	if s.revoked == nil {
		s.revoked = make(map[string]time.Duration)
	}
	s.revoked[jti] = ttl
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, s.err
}

// ---------------------------------------------------------------------------
// Tickets
// ---------------------------------------------------------------------------

type stubTicketRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Ticket
	order     []string
	createErr error
	lastOwner ports.TicketOwner
}

func newStubTicketRepo(seed ...domain.Ticket) *stubTicketRepo {
	r := &stubTicketRepo{byID: make(map[string]*domain.Ticket)}
	for i := range seed {
		t := seed[i]
		r.byID[t.ID] = &t
		r.order = append(r.order, t.ID)
	}
	return r
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	clone := *t
	clone.Replies = append([]domain.Reply(nil), t.Replies...)
	clone.Tags = append([]string(nil), t.Tags...)
	return &clone
}

func (r *stubTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[t.ID] = cloneTicket(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return cloneTicket(t), nil
}

// List mirrors the owner query of the Mongo repository.
func (r *stubTicketRepo) List(_ context.Context, owner ports.TicketOwner) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOwner = owner
	out := make([]domain.Ticket, 0, len(r.order))
	for _, id := range r.order {
		t := r.byID[id]
		if !owner.IsZero() {
			byID := t.UserID != "" && t.UserID == owner.UserID
			byEmail := t.UserID == "" && strings.EqualFold(t.UserEmail, owner.Email)
			if !byID && !byEmail {
				continue
			}
		}
		out = append(out, *cloneTicket(t))
	}
	return out, nil
}

func (r *stubTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus, at time.Time) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	t.Status = status
	t.UpdatedAt = at
	return cloneTicket(t), nil
}

func (r *stubTicketRepo) UpdateAssignee(_ context.Context, id, assigneeID, assigneeEmail string, at time.Time) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	t.AssigneeID = assigneeID
	t.AssigneeEmail = assigneeEmail
	t.UpdatedAt = at
	return cloneTicket(t), nil
}

func (r *stubTicketRepo) AppendReply(_ context.Context, id string, reply domain.Reply, status domain.TicketStatus) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	t.Replies = append(t.Replies, reply)
	if status != "" {
		t.Status = status
	}
	t.UpdatedAt = reply.Timestamp
	return cloneTicket(t), nil
}

type stubMessageRepo struct {
	msgs []domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *stubMessageRepo) ListByTicket(_ context.Context, ticketID string, includeInternal bool) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.msgs {
		if m.TicketID != ticketID {
			continue
		}
		if m.IsInternal && !includeInternal {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Change pipeline
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	insertErr error
	inserted  []domain.TicketChange
}

func (r *stubEventRepo) InsertChange(_ context.Context, c *domain.TicketChange) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *c)
	return nil
}

func (r *stubEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketChange, error) {
	var out []domain.TicketChange
	for _, c := range r.inserted {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubQueue struct {
	mu      sync.Mutex
	changes []domain.TicketChange
}

func (q *stubQueue) Enqueue(c domain.TicketChange) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.changes = append(q.changes, c)
}

func (q *stubQueue) kinds() []domain.ChangeKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.ChangeKind, len(q.changes))
	for i, c := range q.changes {
		out[i] = c.Kind
	}
	return out
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ string, _ domain.ChangeKind, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, ticketID string, kind domain.ChangeKind, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, ticketID+":"+string(kind))
	return nil
}

// stubFeed is an in-process ChangeFeed.
type stubFeed struct {
	mu         sync.Mutex
	publishErr error
	published  []domain.TicketChange
	subs       []*stubSubscription
	subscribed chan struct{}
}

func newStubFeed() *stubFeed {
	return &stubFeed{subscribed: make(chan struct{}, 8)}
}

func (f *stubFeed) Publish(_ context.Context, c domain.TicketChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, c)
	for _, s := range f.subs {
		s.events <- c
	}
	return nil
}

func (f *stubFeed) Subscribe(_ context.Context) (ports.TicketSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &stubSubscription{events: make(chan domain.TicketChange, 16), errors: make(chan error, 4)}
	f.subs = append(f.subs, s)
	f.subscribed <- struct{}{}
	return s, nil
}

type stubSubscription struct {
	events chan domain.TicketChange
	errors chan error
	closed bool
}

func (s *stubSubscription) Events() <-chan domain.TicketChange { return s.events }
func (s *stubSubscription) Errors() <-chan error             { return s.errors }
func (s *stubSubscription) Close() error {
	s.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Admin and dashboard
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	cats []domain.Category
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.cats...), nil
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrCategoryExists
		}
	}
	r.cats = append(r.cats, *c)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.cats {
		if c.ID == id {
			r.cats = append(r.cats[:i], r.cats[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

type stubStats struct {
	counts    map[string]map[string]int64
	lastOwner ports.TicketOwner
}

func (s *stubStats) CountTicketsBy(_ context.Context, field string, owner ports.TicketOwner) (map[string]int64, error) {
	s.lastOwner = owner
	return s.counts[field], nil
}

func (s *stubStats) CountUnassignedOpen(_ context.Context, _ ports.TicketOwner) (int64, error) {
	return 2, nil
}

func (s *stubStats) CountQuestions(_ context.Context) (int64, error) {
	return 7, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	aliceSession = domain.Session{UserID: "alice", Email: "alice@example.com", Role: domain.RoleEndUser}
	bobSession   = domain.Session{UserID: "bob", Email: "bob@example.com", Role: domain.RoleEndUser}
	agentSession = domain.Session{UserID: "agent", Email: "agent@example.com", Role: domain.RoleSupportAgent}
	adminSession = domain.Session{UserID: "root", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func fixtureTicket(id, owner string, status domain.TicketStatus, minute int) domain.Ticket {
	at := time.Date(2024, 6, 1, 12, minute, 0, 0, time.UTC)
	return domain.Ticket{
		ID:          id,
		Subject:     "Subject " + id,
		Description: "Body " + id,
		Category:    "general",
		Priority:    domain.PriorityMedium,
		Status:      status,
		UserID:      owner,
		UserEmail:   owner + "@example.com",
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}
