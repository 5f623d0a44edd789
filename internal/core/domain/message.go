package domain

import (
	"errors"
	"time"
)

// Message is a threaded message on a ticket. Internal messages are notes
// between staff members.
type Message struct {
	ID          string    `json:"id" bson:"_id"`
	TicketID    string    `json:"ticketId" bson:"ticket_id"`
	Author      string    `json:"author" bson:"author"`
	AuthorRole  Role      `json:"authorRole" bson:"author_role"`
	Content     string    `json:"content" bson:"content"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	IsInternal  bool      `json:"isInternal" bson:"is_internal"`
	Attachments []string  `json:"attachments" bson:"attachments"`
}

// VisibleTo reports whether a viewer with the given role may read m.
func (m *Message) VisibleTo(role Role) bool {
	return !m.IsInternal || role.IsStaff()
}

// Category groups tickets for triage.
type Category struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")

// ChangeKind names the mutation a TicketChange records.
type ChangeKind string

const (
	ChangeCreated       ChangeKind = "created"
	ChangeStatusChanged ChangeKind = "status_changed"
	ChangeAssigned      ChangeKind = "assigned"
	ChangeReplied       ChangeKind = "replied"
	ChangeMessageAdded  ChangeKind = "message_added"
)

// TicketChange is published after every successful ticket write. Ticket holds
// the state after the write.
type TicketChange struct {
	Kind     ChangeKind `json:"kind"`
	TicketID string     `json:"ticketId"`
	Ticket   *Ticket    `json:"ticket,omitempty"`
	Actor    string     `json:"actor"`
	At       time.Time  `json:"at"`
}
