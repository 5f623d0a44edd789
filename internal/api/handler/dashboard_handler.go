package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type contributorResponse struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Reputation   int    `json:"reputation"`
	AnswersCount int    `json:"answersCount"`
}

type dashboardResponse struct {
	Total           int64                 `json:"total"`
	ByStatus        map[string]int64      `json:"byStatus"`
	ByPriority      map[string]int64      `json:"byPriority"`
	UnassignedOpen  int64                 `json:"unassignedOpen"`
	Questions       int64                 `json:"questions"`
	TopContributors []contributorResponse `json:"topContributors"`
}

// Summary handles GET /v1/dashboard.
//
// @Summary      Dashboard counters
// @Description  End users only see counts over their own tickets.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	sum, err := h.service.Summary(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	top := make([]contributorResponse, len(sum.TopContributors))
	for i, ct := range sum.TopContributors {
		top[i] = contributorResponse(ct)
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Total:           sum.Total,
		ByStatus:        sum.ByStatus,
		ByPriority:      sum.ByPriority,
		UnassignedOpen:  sum.UnassignedOpen,
		Questions:       sum.Questions,
		TopContributors: top,
	})
}
