package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// BranchService implements branch CRUD.
type BranchService struct {
	repo ports.BranchRepository
	log  zerolog.Logger
}

func NewBranchService(repo ports.BranchRepository, log zerolog.Logger) *BranchService {
	return &BranchService{repo: repo, log: log}
}

// Create records a new branch attributed to the caller. The name pre-check is
// advisory; the unique index on the name field settles concurrent creates.
func (s *BranchService) Create(ctx context.Context, caller domain.Caller, in ports.BranchInput) (*domain.Branch, error) {
	if in.Name == "" || in.Address == "" || in.City == "" || in.Country == "" {
		return nil, fmt.Errorf("%w: name, address, city and country are required", domain.ErrInvalidInput)
	}
	if caller.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if _, err := s.repo.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrBranchExists
	} else if !errors.Is(err, domain.ErrBranchNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Branch{
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Country:       in.Country,
		LeadPastor:    in.LeadPastor,
		ContactNumber: in.ContactNumber,
		Email:         in.Email,
		CreatedBy:     caller.ID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("branch_id", created.ID).Str("created_by", caller.ID).Msg("branch created")
	return created, nil
}

func (s *BranchService) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BranchService) List(ctx context.Context, page domain.PageRequest) ([]domain.Branch, int64, error) {
	return s.repo.List(ctx, page.Normalize())
}

func (s *BranchService) Update(ctx context.Context, id string, in ports.BranchInput) (*domain.Branch, error) {
	if in.Name == "" || in.Address == "" || in.City == "" || in.Country == "" {
		return nil, fmt.Errorf("%w: name, address, city and country are required", domain.ErrInvalidInput)
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Name = in.Name
	b.Address = in.Address
	b.City = in.City
	b.State = in.State
	b.Country = in.Country
	b.LeadPastor = in.LeadPastor
	b.ContactNumber = in.ContactNumber
	b.Email = in.Email

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("branch_id", id).Msg("branch updated")
	return updated, nil
}

func (s *BranchService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("branch_id", id).Msg("branch deleted")
	return nil
}
