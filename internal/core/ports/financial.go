package ports

import (
	"context"
	"time"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// CreateFinancialInput carries a new ledger entry. The branch is addressed by
// name and resolved to its id before the write.
type CreateFinancialInput struct {
	Date        time.Time
	BranchName  string
	Amount      float64
	Type        string
	Description string
}

// UpdateFinancialInput carries the mutable fields of an existing record.
type UpdateFinancialInput struct {
	Amount      float64
	Description string
}

// FinancialFilter carries the report query parameters.
type FinancialFilter struct {
	BranchID string
	DateFrom time.Time
	DateTo   time.Time
	Page     domain.PageRequest
}

// FinancialRepository defines persistence for financial records.
type FinancialRepository interface {
	Create(ctx context.Context, f *domain.Financial) (*domain.Financial, error)
	FindByID(ctx context.Context, id string) (*domain.Financial, error)
	Update(ctx context.Context, f *domain.Financial) (*domain.Financial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter FinancialFilter) ([]domain.Financial, int64, error)
}

// FinancialService exposes the admin-only ledger operations.
type FinancialService interface {
	Create(ctx context.Context, in CreateFinancialInput) (*domain.Financial, error)
	Report(ctx context.Context, filter FinancialFilter) ([]domain.Financial, int64, error)
	Update(ctx context.Context, id string, in UpdateFinancialInput) (*domain.Financial, error)
	Delete(ctx context.Context, id string) error
}
