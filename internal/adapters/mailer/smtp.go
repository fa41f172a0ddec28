// Package mailer provides ports.Mailer implementations: SMTP delivery through
// go-mail and a logging mailer for local development.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// TLS modes accepted by SMTPOptions.TLS.
const (
	TLSStartTLS      = "starttls"
	TLSOpportunistic = "opportunistic"
	TLSImplicit      = "ssl"
	TLSNone          = "none"
)

// SMTPOptions configures an SMTP mailer.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      string
	Logger   *slog.Logger
}

// SMTPMailer sends each message over a fresh SMTP connection.
type SMTPMailer struct {
	from   string
	opts   []mail.Option
	host   string
	logger *slog.Logger
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer validates opts and returns a mailer. No connection is made until Send.
func NewSMTPMailer(opts SMTPOptions) (*SMTPMailer, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, errors.New("smtp mailer: host is required")
	}
	if strings.TrimSpace(opts.From) == "" {
		return nil, errors.New("smtp mailer: from address is required")
	}

	clientOpts, err := clientOptions(opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		from:   opts.From,
		opts:   clientOpts,
		host:   opts.Host,
		logger: logger.With("component", "smtp_mailer"),
	}, nil
}

func clientOptions(opts SMTPOptions) ([]mail.Option, error) {
	var out []mail.Option
	if opts.Port > 0 {
		out = append(out, mail.WithPort(opts.Port))
	}

	switch strings.ToLower(strings.TrimSpace(opts.TLS)) {
	case "", TLSStartTLS:
		out = append(out, mail.WithTLSPolicy(mail.TLSMandatory))
	case TLSOpportunistic:
		out = append(out, mail.WithTLSPolicy(mail.TLSOpportunistic))
	case TLSImplicit:
		out = append(out, mail.WithSSL())
	case TLSNone:
		out = append(out, mail.WithTLSPolicy(mail.NoTLS))
	default:
		return nil, fmt.Errorf("smtp mailer: unknown tls mode %q", opts.TLS)
	}

	if opts.Username != "" {
		out = append(out,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}
	return out, nil
}

// Send delivers msg as a single-part HTML email.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	message, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.DebugContext(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *SMTPMailer) buildMessage(msg ports.Email) (*mail.Msg, error) {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return message, nil
}
