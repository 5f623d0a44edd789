// Package ticketfilter implements the search, filter and sort pipeline that
// turns the full ticket set into the list a viewer sees.
package ticketfilter

import (
	"slices"
	"strings"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// All disables a categorical filter.
const All = "all"

// Unassigned selects tickets with no assignee.
const Unassigned = "unassigned"

const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortPriority  = "priority"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Criteria is the user-controlled part of the pipeline.
type Criteria struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Assignee  string `json:"assignee"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// Viewer identifies who the list is computed for.
type Viewer struct {
	UserID string
	Email  string
	Role   domain.Role
}

// ViewerFromSession builds a Viewer for a resolved session.
func ViewerFromSession(s domain.Session) Viewer {
	return Viewer{UserID: s.UserID, Email: s.Email, Role: s.Role}
}

// Default returns criteria that keep every ticket, newest first.
func Default() Criteria {
	return Criteria{
		Status:    All,
		Priority:  All,
		Category:  All,
		Assignee:  All,
		SortBy:    SortCreatedAt,
		SortOrder: OrderDesc,
	}
}

// Normalize replaces malformed values with their defaults. Unknown statuses
// and priorities become All, unknown sort keys become createdAt and unknown
// orders become desc. Categories have no fixed set, so only a blank one
// becomes All.
func Normalize(c Criteria) Criteria {
	out := Criteria{
		Search:    strings.TrimSpace(c.Search),
		Status:    strings.TrimSpace(c.Status),
		Priority:  strings.TrimSpace(c.Priority),
		Category:  strings.TrimSpace(c.Category),
		Assignee:  strings.TrimSpace(c.Assignee),
		SortBy:    strings.TrimSpace(c.SortBy),
		SortOrder: strings.ToLower(strings.TrimSpace(c.SortOrder)),
	}
	if !domain.TicketStatus(out.Status).Valid() {
		out.Status = All
	}
	if !domain.Priority(out.Priority).Valid() {
		out.Priority = All
	}
	if out.Category == "" {
		out.Category = All
	}
	if out.Assignee == "" {
		out.Assignee = All
	}
	switch out.SortBy {
	case SortCreatedAt, SortUpdatedAt, SortPriority:
	default:
		out.SortBy = SortCreatedAt
	}
	if out.SortOrder != OrderAsc {
		out.SortOrder = OrderDesc
	}
	return out
}

// Apply returns the tickets the viewer may see that satisfy c, sorted per c.
// The input slice is never modified and the result is a subset of it.
// Viewers in the lowest role tier only ever see tickets they own.
func Apply(tickets []domain.Ticket, c Criteria, v Viewer) []domain.Ticket {
	c = Normalize(c)
	search := strings.ToLower(c.Search)

	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		if !visible(t, v) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if c.Status != All && string(t.Status) != c.Status {
			continue
		}
		if c.Priority != All && string(t.Priority) != c.Priority {
			continue
		}
		if c.Category != All && t.Category != c.Category {
			continue
		}
		if !matchesAssignee(t, c.Assignee) {
			continue
		}
		out = append(out, *t)
	}

	sortTickets(out, c.SortBy, c.SortOrder == OrderDesc)
	return out
}

// Visible reports whether v may see t at all, ignoring criteria.
func Visible(t *domain.Ticket, v Viewer) bool {
	return visible(t, v)
}

func visible(t *domain.Ticket, v Viewer) bool {
	if v.Role.IsStaff() {
		return true
	}
	return domain.Session{UserID: v.UserID, Email: v.Email}.Owns(t)
}

func matchesSearch(t *domain.Ticket, needle string) bool {
	return strings.Contains(strings.ToLower(t.Subject), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.ID), needle)
}

func matchesAssignee(t *domain.Ticket, assignee string) bool {
	switch assignee {
	case All:
		return true
	case Unassigned:
		return t.Unassigned()
	}
	return t.AssigneeEmail == assignee || t.AssigneeID == assignee
}

// sortTickets orders in place. Equal keys keep their relative input order in
// both directions.
func sortTickets(ts []domain.Ticket, by string, desc bool) {
	cmp := func(a, b domain.Ticket) int {
		switch by {
		case SortPriority:
			return a.Priority.Rank() - b.Priority.Rank()
		case SortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	slices.SortStableFunc(ts, func(a, b domain.Ticket) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}
