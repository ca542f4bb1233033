package ports

import (
	"context"
	"time"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// EventFilter carries the optional query parameters for listing events.
type EventFilter struct {
	DateFrom    time.Time // zero = unbounded
	DateTo      time.Time // zero = unbounded
	OrganizerID string    // empty = no filter
	Page        domain.PageRequest
}

// EventRepository defines persistence for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EventFilter) ([]domain.Event, int64, error)
}
