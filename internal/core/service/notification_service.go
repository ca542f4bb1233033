package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// NotificationDispatcher enqueues stored notifications for asynchronous
// delivery to the external sink.
type NotificationDispatcher interface {
	Enqueue(n domain.Notification)
}

// NotificationService implements notification send/list/read/delete with
// ownership gating: recipients own deletion, senders own read-marking, and
// admins bypass both.
type NotificationService struct {
	repo       ports.NotificationRepository
	principals ports.PrincipalRepository
	dispatcher NotificationDispatcher // optional
	log        zerolog.Logger
}

func NewNotificationService(
	repo ports.NotificationRepository,
	principals ports.PrincipalRepository,
	dispatcher NotificationDispatcher,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, principals: principals, dispatcher: dispatcher, log: log}
}

// Send persists a notification from the caller to the recipient and enqueues
// delivery. Only admins may send.
func (s *NotificationService) Send(ctx context.Context, caller domain.Caller, in ports.SendNotificationInput) (*domain.Notification, error) {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Message == "" || in.RecipientID == "" {
		return nil, fmt.Errorf("%w: title, message and recipient are required", domain.ErrInvalidInput)
	}

	kind := in.Type
	if kind == "" {
		kind = domain.NotificationGeneral
	}
	if !domain.ValidNotificationType(kind) {
		return nil, fmt.Errorf("%w: unknown notification type %q", domain.ErrInvalidInput, in.Type)
	}

	if _, err := s.principals.FindByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Notification{
		Title:       in.Title,
		Message:     in.Message,
		RecipientID: in.RecipientID,
		SenderID:    caller.ID,
		Type:        kind,
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(*created)
	}

	s.log.Info().
		Str("notification_id", created.ID).
		Str("recipient_id", in.RecipientID).
		Str("sender_id", caller.ID).
		Msg("notification sent")
	return created, nil
}

// ListForCaller returns the caller's own notifications, newest first.
func (s *NotificationService) ListForCaller(ctx context.Context, caller domain.Caller, page domain.PageRequest) ([]domain.Notification, int64, error) {
	if caller.ID == "" {
		return nil, 0, domain.ErrUnauthenticated
	}
	return s.repo.ListByRecipient(ctx, caller.ID, page.Normalize())
}

// MarkRead flags a notification as read. Only its sender (or an admin) may do so.
func (s *NotificationService) MarkRead(ctx context.Context, caller domain.Caller, id string) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, n.SenderID); err != nil {
		return nil, err
	}
	return s.repo.MarkRead(ctx, id)
}

// Delete removes a notification. Only its recipient (or an admin) may do so.
func (s *NotificationService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(caller, n.RecipientID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("notification_id", id).Str("caller_id", caller.ID).Msg("notification deleted")
	return nil
}
