package mailer

import (
	"context"
	"log/slog"

	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// LogMailer writes messages to the logger instead of delivering them.
// Used when MAIL_MODE=log so links can be followed from the console.
type LogMailer struct {
	logger *slog.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

// NewLogMailer returns a LogMailer; a nil logger falls back to slog.Default().
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With("component", "log_mailer")}
}

// Send logs the message and never fails.
func (m *LogMailer) Send(ctx context.Context, msg ports.Email) error {
	m.logger.InfoContext(ctx, "email",
		"to", msg.To,
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return nil
}
