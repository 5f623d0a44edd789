package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// EventHandler serves the audit trail of ticket changes.
type EventHandler struct {
	tickets ports.TicketService
}

// NewEventHandler creates an EventHandler backed by the ticket service.
func NewEventHandler(tickets ports.TicketService) *EventHandler {
	return &EventHandler{tickets: tickets}
}

// History handles GET /v1/tickets/:id/events, oldest change first.
//
// @Summary      Ticket change history
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {array}   changeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id}/events [get]
func (h *EventHandler) History(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	changes, err := h.tickets.History(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]changeResponse, len(changes))
	for i, ch := range changes {
		out[i] = toChangeResponse(ch)
	}
	return c.JSON(http.StatusOK, out)
}
