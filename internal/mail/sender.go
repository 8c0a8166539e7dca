package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender dispatches verification mail to an external provider.
type Sender interface {
	SendAuthCode(ctx context.Context, to, code string) error
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	replyTo string
}

func NewResendSender(apiKey, from, replyTo string) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
	}
}

func (s *ResendSender) SendAuthCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Team Match email verification",
		Html: fmt.Sprintf(
			"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 5 minutes.</p>",
			code),
	}
	if s.replyTo != "" {
		params.ReplyTo = s.replyTo
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

// LogSender is used when no mail provider is configured; it only logs the
// code so local development still works end to end.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendAuthCode(_ context.Context, to, code string) error {
	s.log.Info("mail provider not configured, logging auth code instead",
		zap.String("to", to), zap.String("code", code))
	return nil
}
