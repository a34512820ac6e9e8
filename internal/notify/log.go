package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes messages to the log instead of delivering them. Used
// when no mail server is configured, so the alert batch can still run end to
// end in development.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier that logs instead of sending.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message and recipient count.
func (n *LogNotifier) Notify(_ context.Context, subject, body string, recipients []string) error {
	n.logger.Info().
		Str("subject", subject).
		Int("recipients", len(recipients)).
		Str("body", body).
		Msg("notification (log only, no mail server configured)")
	return nil
}
