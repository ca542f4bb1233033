package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// BranchInput carries the writable branch fields.
type BranchInput struct {
	Name          string
	Address       string
	City          string
	State         string
	Country       string
	LeadPastor    string
	ContactNumber string
	Email         string
}

// BranchService exposes branch CRUD. Mutations are admin-gated at the route
// level; Create additionally records the creating caller.
type BranchService interface {
	Create(ctx context.Context, caller domain.Caller, in BranchInput) (*domain.Branch, error)
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Branch, int64, error)
	Update(ctx context.Context, id string, in BranchInput) (*domain.Branch, error)
	Delete(ctx context.Context, id string) error
}
