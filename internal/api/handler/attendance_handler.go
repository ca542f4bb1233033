package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// AttendanceHandler records service head counts and serves attendance reports.
type AttendanceHandler struct {
	attendanceService ports.AttendanceService
}

func NewAttendanceHandler(attendanceService ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type createAttendanceRequest struct {
	Date          string   `json:"date"      validate:"required"`
	BranchID      string   `json:"branch_id" validate:"required"`
	AttendeeIDs   []string `json:"attendees"`
	MaleCount     int      `json:"male_count"     validate:"gte=0"`
	FemaleCount   int      `json:"female_count"   validate:"gte=0"`
	ChildrenCount int      `json:"children_count" validate:"gte=0"`
}

type attendanceResponse struct {
	Message    string             `json:"message,omitempty"`
	Attendance *domain.Attendance `json:"attendance"`
}

type attendanceListResponse struct {
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"totalPages"`
	Records    []domain.Attendance `json:"records"`
}

// Create records attendance for a service.
//
// @Summary      Record attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAttendanceRequest  true  "Attendance record"
// @Success      201   {object}  attendanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/attendance [post]
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req createAttendanceRequest
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

	record, err := h.attendanceService.Create(c.Request().Context(), ports.CreateAttendanceInput{
		Date:          date,
		BranchID:      req.BranchID,
		AttendeeIDs:   req.AttendeeIDs,
		MaleCount:     req.MaleCount,
		FemaleCount:   req.FemaleCount,
		ChildrenCount: req.ChildrenCount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, attendanceResponse{
		Message:    "attendance recorded successfully",
		Attendance: record,
	})
}

// List returns attendance records filtered by optional date range and branch.
//
// @Summary      Attendance report
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        from    query     string  false  "Start date (inclusive)"
// @Param        to      query     string  false  "End date (inclusive)"
// @Param        branch  query     string  false  "Branch id"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  attendanceListResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/v1/attendance [get]
func (h *AttendanceHandler) List(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	filter := ports.AttendanceFilter{
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

	records, total, err := h.attendanceService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attendanceListResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, page.Limit),
		Records:    records,
	})
}
