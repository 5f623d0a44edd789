package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// AdminHandler serves user-role and category management.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,user_role"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ChangeRole handles PATCH /v1/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.ChangeRole(c.Request().Context(), sess, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListCategories handles GET /v1/categories.
//
// @Summary      List ticket categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *AdminHandler) ListCategories(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// AddCategory handles POST /v1/admin/categories.
//
// @Summary      Add a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/categories [post]
func (h *AdminHandler) AddCategory(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cat, err := h.service.AddCategory(c.Request().Context(), sess, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Category id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
