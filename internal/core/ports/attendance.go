package ports

import (
	"context"
	"time"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// CreateAttendanceInput carries a new attendance record. Attendee ids are
// checked for existence before the write.
type CreateAttendanceInput struct {
	Date          time.Time
	BranchID      string
	AttendeeIDs   []string
	MaleCount     int
	FemaleCount   int
	ChildrenCount int
}

// AttendanceFilter carries the report query parameters.
type AttendanceFilter struct {
	DateFrom time.Time
	DateTo   time.Time
	BranchID string
	Page     domain.PageRequest
}

// AttendanceRepository defines persistence for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, int64, error)
}

// AttendanceService records head counts and serves the attendance reports.
type AttendanceService interface {
	Create(ctx context.Context, in CreateAttendanceInput) (*domain.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, int64, error)
}
