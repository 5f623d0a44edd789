package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
)

// TicketHandler handles HTTP requests for ticket operations. Domain errors
// are returned as-is and mapped by the central error handler.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// List handles GET /v1/tickets.
//
// @Summary      List tickets
// @Description  Runs the filter/sort pipeline over every ticket the caller may see.
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Case-insensitive match on subject, description or id"
// @Param        status     query     string  false  "open | in_progress | resolved | closed | all"
// @Param        priority   query     string  false  "low | medium | high | all"
// @Param        category   query     string  false  "Category name or all"
// @Param        assignee   query     string  false  "Assignee email/id, unassigned or all"
// @Param        sortBy     query     string  false  "createdAt | updatedAt | priority"
// @Param        sortOrder  query     string  false  "asc | desc"
// @Success      200        {object}  ticketListResponse
// @Failure      401        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /v1/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), sess, ticketfilter.ParseQuery(c.QueryParams()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketListResponse(list.Tickets, list.Total))
}

// ListMine handles GET /v1/tickets/mine.
//
// @Summary      List the caller's own tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ticketListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/tickets/mine [get]
func (h *TicketHandler) ListMine(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListMine(c.Request().Context(), sess, ticketfilter.ParseQuery(c.QueryParams()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketListResponse(list.Tickets, list.Total))
}

// Create handles POST /v1/tickets.
//
// @Summary      Create a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), sess, toCreateInput(req))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/tickets/"+ticket.ID)
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// Get handles GET /v1/tickets/:id.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ticketResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// ChangeStatus handles PATCH /v1/tickets/:id/status.
//
// @Summary      Change a ticket's status
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Ticket id"
// @Param        body  body      changeStatusRequest  true  "New status"
// @Success      200   {object}  ticketResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tickets/{id}/status [patch]
func (h *TicketHandler) ChangeStatus(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.service.ChangeStatus(c.Request().Context(), sess, c.Param("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// Assign handles PATCH /v1/tickets/:id/assignee.
//
// @Summary      Assign or unassign a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Ticket id"
// @Param        body  body      assignRequest  true  "Assignee; empty clears"
// @Success      200   {object}  ticketResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tickets/{id}/assignee [patch]
func (h *TicketHandler) Assign(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.service.Assign(c.Request().Context(), sess, c.Param("id"), ports.AssignInput{
		AssigneeID:    req.AssigneeID,
		AssigneeEmail: req.AssigneeEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// Reply handles POST /v1/tickets/:id/replies.
//
// @Summary      Reply to a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Ticket id"
// @Param        body  body      replyRequest  true  "Reply"
// @Success      201   {object}  ticketResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tickets/{id}/replies [post]
func (h *TicketHandler) Reply(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.service.Reply(c.Request().Context(), sess, c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// ListMessages handles GET /v1/tickets/:id/messages.
//
// @Summary      List ticket messages
// @Description  Internal messages are only returned to staff.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {array}   messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id}/messages [get]
func (h *TicketHandler) ListMessages(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.ListMessages(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]messageResponse, len(msgs))
	for i := range msgs {
		out[i] = toMessageResponse(&msgs[i])
	}
	return c.JSON(http.StatusOK, out)
}

// AddMessage handles POST /v1/tickets/:id/messages.
//
// @Summary      Post a ticket message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Ticket id"
// @Param        body  body      messageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tickets/{id}/messages [post]
func (h *TicketHandler) AddMessage(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg, err := h.service.AddMessage(c.Request().Context(), sess, c.Param("id"), toMessageInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}
