package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTicketRequest struct {
	Subject     string   `json:"subject"     validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Priority    string   `json:"priority"    validate:"omitempty,ticket_priority"`
	Tags        []string `json:"tags"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required,ticket_status"`
}

type assignRequest struct {
	AssigneeID    string `json:"assigneeId"`
	AssigneeEmail string `json:"assigneeEmail" validate:"omitempty,email"`
}

type replyRequest struct {
	Message string `json:"message" validate:"required"`
}

type messageRequest struct {
	Content     string   `json:"content"    validate:"required"`
	IsInternal  bool     `json:"isInternal"`
	Attachments []string `json:"attachments"`
}

// --- Response types ---
// Kept apart from domain types so the JSON contract does not follow storage changes.

type ticketLinks struct {
	Self     string `json:"self"`
	Messages string `json:"messages"`
	Events   string `json:"events"`
}

type replyResponse struct {
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ticketResponse struct {
	ID            string          `json:"id"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	Tags          []string        `json:"tags"`
	UserID        string          `json:"userId"`
	UserEmail     string          `json:"userEmail"`
	AssigneeID    string          `json:"assigneeId,omitempty"`
	AssigneeEmail string          `json:"assigneeEmail,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Replies       []replyResponse `json:"replies"`
	Links         ticketLinks     `json:"_links"`
}

// ticketListResponse carries the filtered list. Total counts every ticket
// the caller may see; Visible counts the ones that passed the criteria.
type ticketListResponse struct {
	Tickets []ticketResponse `json:"tickets"`
	Total   int              `json:"total"`
	Visible int              `json:"visible"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticketId"`
	Author      string    `json:"author"`
	AuthorRole  string    `json:"authorRole"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	IsInternal  bool      `json:"isInternal"`
	Attachments []string  `json:"attachments"`
}

type changeResponse struct {
	Kind     string    `json:"kind"`
	TicketID string    `json:"ticketId"`
	Status   string    `json:"status,omitempty"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
}
