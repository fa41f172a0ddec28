package auth

import "fmt"

// ResetStage tracks where a password flow stands.
//
//	Requested: an email token was mailed out.
//	Confirmed: the email link was followed and a second token was handed to the client.
//	Completed: the password form was submitted with the second token.
type ResetStage int

const (
	StageRequested ResetStage = iota + 1
	StageConfirmed
	StageCompleted
)

func (s ResetStage) String() string {
	switch s {
	case StageRequested:
		return "requested"
	case StageConfirmed:
		return "confirmed"
	case StageCompleted:
		return "completed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// PasswordFlow declares which token purpose is accepted at each stage of a
// two-hop password flow, and where the client finishes it.
type PasswordFlow struct {
	Name string
	// Emailed is minted at StageRequested and verified at StageConfirmed.
	Emailed Purpose
	// Form is minted at StageConfirmed and verified at StageCompleted.
	Form Purpose
	// ClientPath is the client route that receives the form token.
	ClientPath string
	// MarksVerified is set when completing the flow proves email ownership for the first time.
	MarksVerified bool
}

var (
	// ForgotFlow is the password-forgot → reset flow.
	ForgotFlow = PasswordFlow{ //nolint:gochecknoglobals // immutable flow descriptor
		Name:       "forgot_password",
		Emailed:    PurposePasswordForgot,
		Form:       PurposePasswordReset,
		ClientPath: "/reset-password/",
	}
	// InviteFlow is the invitation → set-password flow.
	InviteFlow = PasswordFlow{ //nolint:gochecknoglobals // immutable flow descriptor
		Name:          "invite",
		Emailed:       PurposeInvite,
		Form:          PurposePasswordSet,
		ClientPath:    "/set-password/",
		MarksVerified: true,
	}
)

// PurposeAt returns the purpose verified when entering the given stage.
func (f PasswordFlow) PurposeAt(stage ResetStage) (Purpose, error) {
	switch stage {
	case StageConfirmed:
		return f.Emailed, nil
	case StageCompleted:
		return f.Form, nil
	case StageRequested:
		return "", fmt.Errorf("%s: no token is verified at stage %s", f.Name, stage)
	default:
		return "", fmt.Errorf("%s: unknown stage %s", f.Name, stage)
	}
}
