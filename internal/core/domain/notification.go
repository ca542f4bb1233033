package domain

import "time"

const (
	NotificationGeneral = "general"
	NotificationAlert   = "alert"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	return t == NotificationGeneral || t == NotificationAlert
}

// Notification is a message sent by an admin to a single recipient.
// RecipientID gates deletion; SenderID gates read-marking.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id"`
	Read        bool      `json:"read"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}
