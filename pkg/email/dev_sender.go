package email

import (
	"context"
	"log/slog"
)

// DevSender logs messages instead of delivering them. It is the sender for
// environments without Postmark tokens.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a logging sender.
func NewDevSender(log *slog.Logger) *DevSender {
	if log == nil {
		log = slog.Default()
	}
	return &DevSender{log: log}
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	d.log.InfoContext(ctx, "email (dev sender, not delivered)",
		slog.String("to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
	)
	return nil
}
