package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// PrincipalService implements admin-side account management.
type PrincipalService struct {
	repo ports.PrincipalRepository
	log  zerolog.Logger
}

func NewPrincipalService(repo ports.PrincipalRepository, log zerolog.Logger) *PrincipalService {
	return &PrincipalService{repo: repo, log: log}
}

func (s *PrincipalService) List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error) {
	return s.repo.List(ctx, page.Normalize())
}

func (s *PrincipalService) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies an admin-initiated change to any account. Username and role
// are required; a password change is optional and requires confirmation.
func (s *PrincipalService) Update(ctx context.Context, id string, in ports.UpdatePrincipalInput) (*domain.Principal, error) {
	if in.Username == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: username and role are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Password != "" || in.ConfirmPassword != "" {
		if in.Password != in.ConfirmPassword {
			return nil, domain.ErrPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		p.PasswordHash = string(hash)
	}

	p.Username = in.Username
	p.Role = in.Role

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("principal_id", id).Msg("principal updated")
	return updated, nil
}

func (s *PrincipalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("principal_id", id).Msg("principal deleted")
	return nil
}
