package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// FinancialService implements the admin-only ledger operations.
type FinancialService struct {
	records  ports.FinancialRepository
	branches ports.BranchRepository
	log      zerolog.Logger
}

func NewFinancialService(records ports.FinancialRepository, branches ports.BranchRepository, log zerolog.Logger) *FinancialService {
	return &FinancialService{records: records, branches: branches, log: log}
}

// Create resolves the branch by name and persists the entry. The branch lookup
// and the insert are independent reads; a concurrent branch deletion between
// them is tolerated and reported by the caller's next read, not prevented.
func (s *FinancialService) Create(ctx context.Context, in ports.CreateFinancialInput) (*domain.Financial, error) {
	if in.Date.IsZero() || in.BranchName == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: date, branch name and type are required", domain.ErrInvalidInput)
	}

	branch, err := s.branches.FindByName(ctx, in.BranchName)
	if err != nil {
		return nil, err
	}

	created, err := s.records.Create(ctx, &domain.Financial{
		Date:        in.Date,
		BranchID:    branch.ID,
		BranchName:  branch.Name,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("financial_id", created.ID).Str("branch_id", branch.ID).Msg("financial record added")
	return created, nil
}

func (s *FinancialService) Report(ctx context.Context, filter ports.FinancialFilter) ([]domain.Financial, int64, error) {
	if !filter.DateFrom.IsZero() && !filter.DateTo.IsZero() && filter.DateFrom.After(filter.DateTo) {
		return nil, 0, fmt.Errorf("%w: start date is after end date", domain.ErrInvalidInput)
	}
	filter.Page = filter.Page.Normalize()
	return s.records.List(ctx, filter)
}

func (s *FinancialService) Update(ctx context.Context, id string, in ports.UpdateFinancialInput) (*domain.Financial, error) {
	if in.Amount == 0 && in.Description == "" {
		return nil, fmt.Errorf("%w: amount or description is required", domain.ErrInvalidInput)
	}

	f, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount != 0 {
		f.Amount = in.Amount
	}
	if in.Description != "" {
		f.Description = in.Description
	}

	updated, err := s.records.Update(ctx, f)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("financial_id", id).Msg("financial record updated")
	return updated, nil
}

func (s *FinancialService) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("financial_id", id).Msg("financial record deleted")
	return nil
}
