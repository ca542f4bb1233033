package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// PrincipalRepository defines persistence for principals (users and admins).
// The store enforces email uniqueness with a unique index; Create surfaces a
// violation as domain.ErrEmailTaken. The application-level existence check in
// the service layer is an optimization, not the correctness guarantee.
type PrincipalRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of principals and the total count.
	List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error)
	// MissingIDs returns the subset of ids with no backing record, preserving
	// input order. Used for referential checks on attendee lists.
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}
