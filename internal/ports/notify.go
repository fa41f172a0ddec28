package ports

import "context"

// Email is a single outbound HTML message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers email. Callers treat delivery as best effort.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// URLSigner exposes private object-store keys through time-limited URLs.
type URLSigner interface {
	SignedURL(ctx context.Context, key string) (string, error)
}

// MailerFunc adapts a function to the Mailer interface (useful for tests).
type MailerFunc func(ctx context.Context, msg Email) error

// Send implements Mailer.
func (f MailerFunc) Send(ctx context.Context, msg Email) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}
