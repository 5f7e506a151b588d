package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes codes to the log instead of sending email. It exists
// for local development when no SMTP relay is configured; never use it in
// an environment whose logs anyone else can read.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) SendOTP(ctx context.Context, p EmailParams) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("otp email (log transport)",
		"to", p.To,
		"code", p.Code,
		"valid_for", p.CodeLifetime.String(),
	)
	return nil
}
