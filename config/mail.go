package config

import (
	"errors"
	"fmt"
	"strings"
)

// MailMode selects the outbound mail transport.
type MailMode string

const (
	// MailModeSMTP delivers through an SMTP relay.
	MailModeSMTP MailMode = "smtp"
	// MailModeLog writes messages to the log instead of sending them (development only).
	MailModeLog MailMode = "log"
)

// UnmarshalText implements encoding.TextUnmarshaler for MailMode.
func (m *MailMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "", "smtp", "log":
		*m = MailMode(v)
		return nil
	default:
		return fmt.Errorf("invalid MailMode: %q (valid options: smtp, log)", v)
	}
}

// MailConfig contains outbound email configuration.
type MailConfig struct {
	// Mode defaults to log in development and smtp otherwise.
	Mode     MailMode `env:"MODE"`
	Host     string   `env:"HOST"`
	Port     int      `env:"PORT"     envDefault:"587"`
	Username string   `env:"USERNAME"`
	Password string   `env:"PASSWORD"`
	From     string   `env:"FROM"     envDefault:"no-reply@localhost"`
	// TLS is one of starttls, opportunistic, ssl, none.
	TLS string `env:"TLS" envDefault:"starttls"`
}

// Sanitize picks the default mode and normalizes fields.
func (m *MailConfig) Sanitize(isDev bool) {
	if m.Mode == "" {
		m.Mode = MailModeSMTP
		if isDev {
			m.Mode = MailModeLog
		}
	}
	m.Host = strings.TrimSpace(m.Host)
	m.From = strings.TrimSpace(m.From)
	m.TLS = strings.ToLower(strings.TrimSpace(m.TLS))
}

// Validate requires a relay host in SMTP mode.
func (m *MailConfig) Validate() error {
	if m.Mode != MailModeSMTP {
		return nil
	}
	var errs []error
	if m.Host == "" {
		errs = append(errs, errors.New("MAIL_HOST is required when MAIL_MODE=smtp"))
	}
	if m.From == "" {
		errs = append(errs, errors.New("MAIL_FROM is required when MAIL_MODE=smtp"))
	}
	return errors.Join(errs...)
}
