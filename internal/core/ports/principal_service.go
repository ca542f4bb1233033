package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// UpdatePrincipalInput carries the fields an admin may change on any account.
// Password changes require a matching confirmation.
type UpdatePrincipalInput struct {
	Username        string
	Role            string
	Password        string
	ConfirmPassword string
}

// PrincipalService exposes admin-side account management.
type PrincipalService interface {
	List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	Update(ctx context.Context, id string, in UpdatePrincipalInput) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
}
