package domain

import (
	"errors"
	"strings"
	"time"
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Priority ranks how urgently a ticket needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Any known status may be set from any other; staff drive the lifecycle.
var knownStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
}

var ErrTicketNotFound = errors.New("ticket not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	return knownStatuses[s]
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders priorities: high=3, medium=2, low=1, anything else 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Reply is one entry of a ticket's append-only reply thread.
type Reply struct {
	Message   string    `json:"message" bson:"message"`
	Sender    string    `json:"sender" bson:"sender"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Ticket is a support request. Owner fields are fixed at creation.
type Ticket struct {
	ID            string       `json:"id" bson:"_id"`
	Subject       string       `json:"subject" bson:"subject"`
	Description   string       `json:"description" bson:"description"`
	Category      string       `json:"category" bson:"category"`
	Priority      Priority     `json:"priority" bson:"priority"`
	Status        TicketStatus `json:"status" bson:"status"`
	Tags          []string     `json:"tags" bson:"tags"`
	UserID        string       `json:"userId" bson:"user_id"`
	UserEmail     string       `json:"userEmail" bson:"user_email"`
	AssigneeID    string       `json:"assigneeId,omitempty" bson:"assignee_id,omitempty"`
	AssigneeEmail string       `json:"assigneeEmail,omitempty" bson:"assignee_email,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updated_at"`
	Replies       []Reply      `json:"replies" bson:"replies"`
}

// Unassigned reports whether no assignee is set.
func (t *Ticket) Unassigned() bool {
	return strings.TrimSpace(t.AssigneeID) == "" && strings.TrimSpace(t.AssigneeEmail) == ""
}

// NormalizeTags trims, lower-cases and de-duplicates tags, keeping the order
// of first appearance.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
