package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// SendNotificationInput carries a new notification addressed to one recipient.
type SendNotificationInput struct {
	Title       string
	Message     string
	RecipientID string
	Type        string
}

// NotificationRepository defines persistence for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
	Delete(ctx context.Context, id string) error
	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string, page domain.PageRequest) ([]domain.Notification, int64, error)
}

// NotificationService exposes the notification operations. Delete requires
// recipient ownership and MarkRead requires sender ownership; admins bypass
// both checks.
type NotificationService interface {
	Send(ctx context.Context, caller domain.Caller, in SendNotificationInput) (*domain.Notification, error)
	ListForCaller(ctx context.Context, caller domain.Caller, page domain.PageRequest) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, caller domain.Caller, id string) (*domain.Notification, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

// NotificationSink delivers a stored notification to an external channel
// (email, push...). Delivery failures are reported, never fatal.
type NotificationSink interface {
	Deliver(ctx context.Context, n domain.Notification) error
}
