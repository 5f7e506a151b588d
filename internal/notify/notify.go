// Package notify delivers one-time codes to account holders out of band.
// The auth service only depends on the Notifier interface; transports are
// wired in at construction time.
package notify

import (
	"context"
	"strings"
	"text/template"
	"time"
)

// EmailParams carries everything the message template needs.
type EmailParams struct {
	To           string
	Name         string
	SiteName     string
	Code         string
	CodeLifetime time.Duration
}

// Notifier delivers a one-time code to an address. Implementations must
// treat the code as a secret: it never goes anywhere except the message
// to its owner.
type Notifier interface {
	SendOTP(ctx context.Context, p EmailParams) error
}

// DefaultSubject is the subject line for OTP emails.
const DefaultSubject = "Your sign-in code"

// DefaultBodyTemplate is the plain-text body for OTP emails.
const DefaultBodyTemplate = `Hi {{.Name}},

This is your sign-in code for {{.SiteName}}:

{{.Code}}

The code is valid for {{printf "%.f" .CodeLifetime.Minutes}} minutes.

If you did not request a code, you can ignore this email.
`

var bodyTemplate = template.Must(template.New("otp").Parse(DefaultBodyTemplate))

// RenderBody executes the body template with the given params.
func RenderBody(p EmailParams) (string, error) {
	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
