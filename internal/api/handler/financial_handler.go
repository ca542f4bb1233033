package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// FinancialHandler exposes the admin-only ledger operations.
type FinancialHandler struct {
	financialService ports.FinancialService
}

func NewFinancialHandler(financialService ports.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

type createFinancialRequest struct {
	Date        string  `json:"date"        validate:"required"`
	BranchName  string  `json:"branch_name" validate:"required"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Type        string  `json:"type"        validate:"required,oneof=tithe offering donation expense"`
	Description string  `json:"description"`
}

type updateFinancialRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

type financialResponse struct {
	Message string            `json:"message,omitempty"`
	Record  *domain.Financial `json:"record"`
}

type financialListResponse struct {
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"totalPages"`
	Records    []domain.Financial `json:"records"`
}

// Create adds a ledger entry.
//
// @Summary      Record a financial entry
// @Tags         financial
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFinancialRequest  true  "Ledger entry"
// @Success      201   {object}  financialResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/financial [post]
func (h *FinancialHandler) Create(c echo.Context) error {
	var req createFinancialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := parseDateField(req.Date)
	if err != nil {
		return err
	}

	record, err := h.financialService.Create(c.Request().Context(), ports.CreateFinancialInput{
		Date:        date,
		BranchName:  req.BranchName,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, financialResponse{
		Message: "record created successfully",
		Record:  record,
	})
}

// Report returns ledger entries filtered by optional branch and date range.
//
// @Summary      Financial report
// @Tags         financial
// @Produce      json
// @Security     BearerAuth
// @Param        branch  query     string  false  "Branch id"
// @Param        from    query     string  false  "Start date (inclusive)"
// @Param        to      query     string  false  "End date (inclusive)"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  financialListResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/v1/financial [get]
func (h *FinancialHandler) Report(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	filter := ports.FinancialFilter{
		BranchID: c.QueryParam("branch"),
		Page:     page,
	}
	if raw := c.QueryParam("from"); raw != "" {
		if filter.DateFrom, err = parseDateField(raw); err != nil {
			return err
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if filter.DateTo, err = parseDateField(raw); err != nil {
			return err
		}
	}

	records, total, err := h.financialService.Report(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, financialListResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, page.Limit),
		Records:    records,
	})
}

// Update rewrites the amount and description of an entry.
//
// @Summary      Update a financial entry
// @Tags         financial
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Record id"
// @Param        body  body      updateFinancialRequest  true  "Fields to set"
// @Success      200   {object}  financialResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/financial/{id} [put]
func (h *FinancialHandler) Update(c echo.Context) error {
	var req updateFinancialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := h.financialService.Update(c.Request().Context(), c.Param("id"), ports.UpdateFinancialInput{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, financialResponse{
		Message: "record updated successfully",
		Record:  record,
	})
}

// Delete removes a ledger entry.
//
// @Summary      Delete a financial entry
// @Tags         financial
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/financial/{id} [delete]
func (h *FinancialHandler) Delete(c echo.Context) error {
	if err := h.financialService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "record deleted successfully"})
}
