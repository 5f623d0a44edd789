package handler

import (
	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTicketRequest) ports.CreateTicketInput {
	return ports.CreateTicketInput{
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
}

func toMessageInput(req messageRequest) ports.MessageInput {
	return ports.MessageInput{
		Content:     req.Content,
		IsInternal:  req.IsInternal,
		Attachments: req.Attachments,
	}
}

// --- Domain → Response ---

func buildTicketLinks(id string) ticketLinks {
	return ticketLinks{
		Self:     "/v1/tickets/" + id,
		Messages: "/v1/tickets/" + id + "/messages",
		Events:   "/v1/tickets/" + id + "/events",
	}
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	replies := make([]replyResponse, len(t.Replies))
	for i, r := range t.Replies {
		replies[i] = replyResponse{Message: r.Message, Sender: r.Sender, Timestamp: r.Timestamp}
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return ticketResponse{
		ID:            t.ID,
		Subject:       t.Subject,
		Description:   t.Description,
		Category:      t.Category,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		Tags:          tags,
		UserID:        t.UserID,
		UserEmail:     t.UserEmail,
		AssigneeID:    t.AssigneeID,
		AssigneeEmail: t.AssigneeEmail,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Replies:       replies,
		Links:         buildTicketLinks(t.ID),
	}
}

func toTicketListResponse(tickets []domain.Ticket, total int) ticketListResponse {
	items := make([]ticketResponse, len(tickets))
	for i := range tickets {
		items[i] = toTicketResponse(&tickets[i])
	}
	return ticketListResponse{Tickets: items, Total: total, Visible: len(items)}
}

func toMessageResponse(m *domain.Message) messageResponse {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return messageResponse{
		ID:          m.ID,
		TicketID:    m.TicketID,
		Author:      m.Author,
		AuthorRole:  string(m.AuthorRole),
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		IsInternal:  m.IsInternal,
		Attachments: attachments,
	}
}

func toChangeResponse(ch domain.TicketChange) changeResponse {
	resp := changeResponse{
		Kind:     string(ch.Kind),
		TicketID: ch.TicketID,
		Actor:    ch.Actor,
		At:       ch.At,
	}
	if ch.Ticket != nil {
		resp.Status = string(ch.Ticket.Status)
	}
	return resp
}
