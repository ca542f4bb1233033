// Package email provides the notification delivery sink. The current
// implementation writes structured delivery records to the log; swapping in an
// SMTP or push provider only requires another ports.NotificationSink.
package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// LogSink records deliveries in the structured log.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Deliver writes the notification to the log as a delivery record.
func (s *LogSink) Deliver(ctx context.Context, n domain.Notification) error {
	s.log.Info().
		Str("notification_id", n.ID).
		Str("recipient_id", n.RecipientID).
		Str("type", n.Type).
		Str("title", n.Title).
		Msg("notification delivered")
	return nil
}
