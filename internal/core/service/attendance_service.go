package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// AttendanceService records service attendance and serves the reports.
type AttendanceService struct {
	records    ports.AttendanceRepository
	branches   ports.BranchRepository
	principals ports.PrincipalRepository
	log        zerolog.Logger
}

func NewAttendanceService(
	records ports.AttendanceRepository,
	branches ports.BranchRepository,
	principals ports.PrincipalRepository,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{records: records, branches: branches, principals: principals, log: log}
}

func (s *AttendanceService) Create(ctx context.Context, in ports.CreateAttendanceInput) (*domain.Attendance, error) {
	if in.Date.IsZero() || in.BranchID == "" {
		return nil, fmt.Errorf("%w: date and branch are required", domain.ErrInvalidInput)
	}
	if in.MaleCount < 0 || in.FemaleCount < 0 || in.ChildrenCount < 0 {
		return nil, fmt.Errorf("%w: counts must not be negative", domain.ErrInvalidInput)
	}

	if _, err := s.branches.FindByID(ctx, in.BranchID); err != nil {
		return nil, err
	}

	if len(in.AttendeeIDs) > 0 {
		missing, err := s.principals.MissingIDs(ctx, in.AttendeeIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: unknown attendee ids %v", domain.ErrInvalidInput, missing)
		}
	}

	created, err := s.records.Create(ctx, &domain.Attendance{
		Date:          in.Date,
		BranchID:      in.BranchID,
		AttendeeIDs:   in.AttendeeIDs,
		MaleCount:     in.MaleCount,
		FemaleCount:   in.FemaleCount,
		ChildrenCount: in.ChildrenCount,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("attendance_id", created.ID).Str("branch_id", in.BranchID).Msg("attendance recorded")
	return created, nil
}

func (s *AttendanceService) List(ctx context.Context, filter ports.AttendanceFilter) ([]domain.Attendance, int64, error) {
	if !filter.DateFrom.IsZero() && !filter.DateTo.IsZero() && filter.DateFrom.After(filter.DateTo) {
		return nil, 0, fmt.Errorf("%w: start date is after end date", domain.ErrInvalidInput)
	}
	filter.Page = filter.Page.Normalize()
	return s.records.List(ctx, filter)
}
