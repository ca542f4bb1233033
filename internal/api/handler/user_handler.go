package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// UserHandler exposes admin-side account management over all principals.
type UserHandler struct {
	principalService ports.PrincipalService
}

func NewUserHandler(principalService ports.PrincipalService) *UserHandler {
	return &UserHandler{principalService: principalService}
}

type updateUserRequest struct {
	Username        string `json:"username" validate:"required"`
	Role            string `json:"role"     validate:"required,oneof=user admin"`
	Password        string `json:"password" validate:"omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password"`
}

type userListResponse struct {
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"totalPages"`
	Users      []domain.Principal `json:"users"`
}

// List returns a page of principals.
//
// @Summary      List principals
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  userListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	users, total, err := h.principalService.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, page.Limit),
		Users:      users,
	})
}

// Get returns a single principal by id.
//
// @Summary      Get a principal
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Principal id"
// @Success      200  {object}  principalResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.principalService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{Principal: user})
}

// Update rewrites a principal's username, role, and optionally password.
//
// @Summary      Update a principal
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Principal id"
// @Param        body  body      updateUserRequest  true  "Fields to set"
// @Success      200   {object}  principalResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.principalService.Update(c.Request().Context(), c.Param("id"), ports.UpdatePrincipalInput{
		Username:        req.Username,
		Role:            req.Role,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{
		Message:   "user updated successfully",
		Principal: updated,
	})
}

// Delete removes a principal.
//
// @Summary      Delete a principal
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Principal id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.principalService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}
