package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// EventService implements event CRUD with referential checks against branches
// and principals. The lookups and the final write are independent reads — a
// branch deleted in between is a tolerated race reported by the store, not a
// transactional guarantee.
type EventService struct {
	events     ports.EventRepository
	branches   ports.BranchRepository
	principals ports.PrincipalRepository
	blobs      ports.BlobStore
	log        zerolog.Logger
}

func NewEventService(
	events ports.EventRepository,
	branches ports.BranchRepository,
	principals ports.PrincipalRepository,
	blobs ports.BlobStore,
	log zerolog.Logger,
) *EventService {
	return &EventService{events: events, branches: branches, principals: principals, blobs: blobs, log: log}
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if in.Title == "" || in.Date.IsZero() || in.Branch == "" || in.OrganizerID == "" {
		return nil, fmt.Errorf("%w: title, date, branch and organizer are required", domain.ErrInvalidInput)
	}

	branch, err := s.resolveBranch(ctx, in.Branch)
	if err != nil {
		return nil, err
	}

	if _, err := s.principals.FindByID(ctx, in.OrganizerID); err != nil {
		return nil, err
	}

	if len(in.AttendeeIDs) > 0 {
		missing, err := s.principals.MissingIDs(ctx, in.AttendeeIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: unknown attendee ids %v", domain.ErrInvalidInput, missing)
		}
	}

	var imageURL string
	if in.Image != nil {
		imageURL, err = s.blobs.Upload(ctx, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload event image: %w", err)
		}
	}

	created, err := s.events.Create(ctx, &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		BranchID:    branch.ID,
		BranchName:  branch.Name,
		OrganizerID: in.OrganizerID,
		AttendeeIDs: in.AttendeeIDs,
		ImageURL:    imageURL,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("branch_id", branch.ID).Msg("event created")
	return created, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) List(ctx context.Context, filter ports.EventFilter) ([]domain.Event, int64, error) {
	if filter.OrganizerID != "" {
		if _, err := s.principals.FindByID(ctx, filter.OrganizerID); err != nil {
			return nil, 0, err
		}
	}
	filter.Page = filter.Page.Normalize()
	return s.events.List(ctx, filter)
}

func (s *EventService) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	if in.Title == "" || in.Date.IsZero() || in.Branch == "" {
		return nil, fmt.Errorf("%w: title, date and branch are required", domain.ErrInvalidInput)
	}

	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	branch, err := s.resolveBranch(ctx, in.Branch)
	if err != nil {
		return nil, err
	}

	e.Title = in.Title
	e.Description = in.Description
	e.Date = in.Date
	e.BranchID = branch.ID
	e.BranchName = branch.Name

	if in.Image != nil {
		url, err := s.blobs.Upload(ctx, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload event image: %w", err)
		}
		e.ImageURL = url
	}

	updated, err := s.events.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("event_id", id).Msg("event updated")
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

// resolveBranch accepts either a branch id or a branch name.
func (s *EventService) resolveBranch(ctx context.Context, ref string) (*domain.Branch, error) {
	b, err := s.branches.FindByID(ctx, ref)
	if err == nil {
		return b, nil
	}
	return s.branches.FindByName(ctx, ref)
}
