package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// BranchRepository defines persistence for branches. Branch name carries a
// unique index; Create maps a violation to domain.ErrBranchExists.
type BranchRepository interface {
	Create(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	FindByID(ctx context.Context, id string) (*domain.Branch, error)
	FindByName(ctx context.Context, name string) (*domain.Branch, error)
	Update(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.PageRequest) ([]domain.Branch, int64, error)
}
