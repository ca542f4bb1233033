package ports

import (
	"context"
	"io"
	"time"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// FileUpload is an image attachment streamed from a multipart request.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// CreateEventInput carries the data for a new event. Branch may be an id or a
// branch name; the service resolves either. Image is optional.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Branch      string
	OrganizerID string
	AttendeeIDs []string
	Image       *FileUpload
}

// UpdateEventInput carries the writable fields of an existing event.
type UpdateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Branch      string
	Image       *FileUpload
}

// EventService exposes event CRUD plus the date-range and organizer queries.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, int64, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
