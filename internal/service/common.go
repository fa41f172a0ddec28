package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// Auth event names recorded through AuthEventRecorder.
const (
	EventSignup        = "signup"
	EventVerifyEmail   = "verify_email"
	EventLogin         = "login"
	EventRefresh       = "refresh"
	EventLogout        = "logout"
	EventPasswordReset = "password_reset"
	EventInvite        = "invite"
)

// Auth event results.
const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// Email subjects.
const (
	subjectVerifyEmail   = "Campaign Builder - Email Verification"
	subjectResetPassword = "Campaign Builder - Reset Password"
	subjectInvitation    = "Campaign Builder - User Invitation"
)

// AuthEventRecorder counts auth outcomes. Implemented by observability/metrics.
type AuthEventRecorder interface {
	AuthEvent(event, result string)
}

// Links holds the public base URLs embedded in emails and redirects.
type Links struct {
	// ServerURL is where email links point (this API).
	ServerURL string
	// ClientURL is the web client that receives redirects.
	ClientURL string
}

func (l Links) api(path, token string) string {
	return strings.TrimRight(l.ServerURL, "/") + "/api/v1/auth/" + path + "/" + token
}

func (l Links) client(path string) string {
	return strings.TrimRight(l.ClientURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ErrorRedirect is where failed email links land.
func (l Links) ErrorRedirect() string { return l.client("error") }

// Observability groups the optional logging and metrics hooks shared by services.
type Observability struct {
	Logger *slog.Logger
	Events AuthEventRecorder
}

func (o Observability) logger(component string) *slog.Logger {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}

func (o Observability) record(event, result string) {
	if o.Events != nil {
		o.Events.AuthEvent(event, result)
	}
}

// profiler renders users with a signed picture URL. Signing is best effort.
type profiler struct {
	signer ports.URLSigner
	logger *slog.Logger
}

func (p profiler) profile(ctx context.Context, u *model.User) model.Profile {
	var imageURL string
	if u.ProfilePic != nil && *u.ProfilePic != "" && p.signer != nil {
		signed, err := p.signer.SignedURL(ctx, *u.ProfilePic)
		if err != nil {
			p.logger.WarnContext(ctx, "sign profile picture failed", "user_id", u.ID, "error", err)
		} else {
			imageURL = signed
		}
	}
	return u.ToProfile(imageURL)
}

// mailer sends templated messages and never fails the caller.
type mailer struct {
	m      ports.Mailer
	logger *slog.Logger
}

func (m mailer) send(ctx context.Context, to, subject, body string) {
	if err := m.m.Send(ctx, ports.Email{To: to, Subject: subject, HTML: body}); err != nil {
		m.logger.ErrorContext(ctx, "send email failed", "subject", subject, "error", err)
	}
}

func linkHTML(lead, url string) string {
	u := html.EscapeString(url)
	return fmt.Sprintf(`%s: <a href="%s">%s</a>`, lead, u, u)
}

func verifyEmailBody(url string) string {
	return linkHTML("Please click this link to confirm your email", url)
}

func resetPasswordBody(url string) string {
	return linkHTML("Please click this link to reset your password", url)
}

func invitationBody(company, url string) string {
	lead := fmt.Sprintf("You have been invited by %s to join their team. "+
		"Please click this link to accept their invitation and set your password", html.EscapeString(company))
	return linkHTML(lead, url)
}
