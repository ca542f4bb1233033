package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

type stubNotificationRepo struct {
	byID   map[string]*domain.Notification
	nextID int
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{byID: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.nextID++
	clone := *n
	clone.ID = "n" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	out := *n
	return &out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	n.Read = true
	out := *n
	return &out, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotificationNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string, page domain.PageRequest) ([]domain.Notification, int64, error) {
	var out []domain.Notification
	for _, n := range r.byID {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

type recordingDispatcher struct {
	enqueued []domain.Notification
}

func (d *recordingDispatcher) Enqueue(n domain.Notification) {
	d.enqueued = append(d.enqueued, n)
}

func notificationFixture(t *testing.T) (*NotificationService, *stubNotificationRepo, *recordingDispatcher, domain.Caller) {
	t.Helper()
	principals := newStubPrincipalRepo()
	principals.byID["member-1"] = &domain.Principal{ID: "member-1", Role: domain.RoleUser}
	repo := newStubNotificationRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewNotificationService(repo, principals, dispatcher, zerolog.Nop())
	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}
	return svc, repo, dispatcher, admin
}

func TestNotificationService_Send_Success(t *testing.T) {
	svc, _, dispatcher, admin := notificationFixture(t)

	n, err := svc.Send(context.Background(), admin, ports.SendNotificationInput{
		Title:       "Service moved",
		Message:     "Sunday service starts at 9am",
		RecipientID: "member-1",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if n.SenderID != "admin-1" || n.RecipientID != "member-1" {
		t.Fatalf("unexpected attribution: %+v", n)
	}
	if n.Type != domain.NotificationGeneral {
		t.Fatalf("expected default type, got %q", n.Type)
	}
	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected delivery enqueued")
	}
}

func TestNotificationService_Send_NonAdminForbidden(t *testing.T) {
	svc, _, _, _ := notificationFixture(t)

	user := domain.Caller{ID: "member-1", Role: domain.RoleUser}
	_, err := svc.Send(context.Background(), user, ports.SendNotificationInput{
		Title: "t", Message: "m", RecipientID: "member-1",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNotificationService_Send_RecipientMissing(t *testing.T) {
	svc, _, _, admin := notificationFixture(t)

	_, err := svc.Send(context.Background(), admin, ports.SendNotificationInput{
		Title: "t", Message: "m", RecipientID: "ghost",
	})
	if !errors.Is(err, domain.ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestNotificationService_Delete_RecipientOwnership(t *testing.T) {
	svc, repo, _, admin := notificationFixture(t)

	n, err := svc.Send(context.Background(), admin, ports.SendNotificationInput{
		Title: "t", Message: "m", RecipientID: "member-1",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// A third party must not delete someone else's notification.
	stranger := domain.Caller{ID: "member-2", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), stranger, n.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Repeated check on unchanged inputs gives the same decision.
	if err := svc.Delete(context.Background(), stranger, n.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("decision not idempotent: %v", err)
	}

	recipient := domain.Caller{ID: "member-1", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), recipient, n.ID); err != nil {
		t.Fatalf("recipient delete: %v", err)
	}
	if _, ok := repo.byID[n.ID]; ok {
		t.Fatalf("notification still present")
	}
}

func TestNotificationService_MarkRead_SenderOwnership(t *testing.T) {
	svc, _, _, admin := notificationFixture(t)

	n, err := svc.Send(context.Background(), admin, ports.SendNotificationInput{
		Title: "t", Message: "m", RecipientID: "member-1",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// The recipient is not the sender and may not mark it read.
	recipient := domain.Caller{ID: "member-1", Role: domain.RoleUser}
	if _, err := svc.MarkRead(context.Background(), recipient, n.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	marked, err := svc.MarkRead(context.Background(), admin, n.ID)
	if err != nil {
		t.Fatalf("sender MarkRead: %v", err)
	}
	if !marked.Read {
		t.Fatalf("notification not marked read")
	}
}

func TestNotificationService_AdminBypassesOwnership(t *testing.T) {
	svc, _, _, admin := notificationFixture(t)

	n, err := svc.Send(context.Background(), admin, ports.SendNotificationInput{
		Title: "t", Message: "m", RecipientID: "member-1",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	otherAdmin := domain.Caller{ID: "admin-2", Role: domain.RoleAdmin}
	if err := svc.Delete(context.Background(), otherAdmin, n.ID); err != nil {
		t.Fatalf("admin delete should bypass ownership: %v", err)
	}
}
