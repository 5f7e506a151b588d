package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig describes the outbound mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SiteName string

	// DisableTLS turns off STARTTLS negotiation; only for local
	// development relays such as Mailpit.
	DisableTLS bool
}

// SMTPNotifier sends OTP emails through an SMTP relay using go-mail.
type SMTPNotifier struct {
	client   *mail.Client
	from     string
	siteName string
}

// NewSMTPNotifier builds the relay client. Credentials are optional; an
// unauthenticated relay is assumed when the username is empty.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.DisableTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: build smtp client: %w", err)
	}

	return &SMTPNotifier{
		client:   client,
		from:     cfg.From,
		siteName: cfg.SiteName,
	}, nil
}

// SendOTP renders and delivers the code email. The context bounds the
// SMTP dial and send; there is no retry here, callers rely on resend.
func (n *SMTPNotifier) SendOTP(ctx context.Context, p EmailParams) error {
	if p.SiteName == "" {
		p.SiteName = n.siteName
	}

	body, err := RenderBody(p)
	if err != nil {
		return fmt.Errorf("notify: render body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("notify: set from: %w", err)
	}
	if err := msg.To(p.To); err != nil {
		return fmt.Errorf("notify: set to: %w", err)
	}
	msg.Subject(DefaultSubject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}
