package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// BranchHandler exposes branch CRUD.
type BranchHandler struct {
	branchService ports.BranchService
}

func NewBranchHandler(branchService ports.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type branchRequest struct {
	Name          string `json:"name"           validate:"required"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	LeadPastor    string `json:"lead_pastor"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type branchResponse struct {
	Message string         `json:"message,omitempty"`
	Branch  *domain.Branch `json:"branch"`
}

type branchListResponse struct {
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Branches   []domain.Branch `json:"branches"`
}

func (req branchRequest) toInput() ports.BranchInput {
	return ports.BranchInput{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		LeadPastor:    req.LeadPastor,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
}

// Create registers a new branch.
//
// @Summary      Create a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      branchRequest  true  "Branch details"
// @Success      201   {object}  branchResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/branches [post]
func (h *BranchHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req branchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	branch, err := h.branchService.Create(c.Request().Context(), caller, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, branchResponse{
		Message: "branch created successfully",
		Branch:  branch,
	})
}

// List returns a page of branches.
//
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  branchListResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/branches [get]
func (h *BranchHandler) List(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	branches, total, err := h.branchService.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, branchListResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, page.Limit),
		Branches:   branches,
	})
}

// Get returns a single branch by id.
//
// @Summary      Get a branch
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Branch id"
// @Success      200  {object}  branchResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/branches/{id} [get]
func (h *BranchHandler) Get(c echo.Context) error {
	branch, err := h.branchService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, branchResponse{Branch: branch})
}

// Update rewrites a branch's details.
//
// @Summary      Update a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Branch id"
// @Param        body  body      branchRequest  true  "Branch details"
// @Success      200   {object}  branchResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/branches/{id} [put]
func (h *BranchHandler) Update(c echo.Context) error {
	var req branchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	branch, err := h.branchService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, branchResponse{
		Message: "branch updated successfully",
		Branch:  branch,
	})
}

// Delete removes a branch.
//
// @Summary      Delete a branch
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Branch id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/branches/{id} [delete]
func (h *BranchHandler) Delete(c echo.Context) error {
	if err := h.branchService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "branch deleted successfully"})
}
