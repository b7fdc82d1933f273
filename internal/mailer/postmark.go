package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/nextstopchina/forms-api/pkg/config"
)

type postmarkSender struct {
	client     *postmark.Client
	senderName string
	fromEmail  string
}

// NewPostmarkSender creates a Postmark-backed Sender. Both tokens and the
// sender address are required so misconfiguration fails at startup rather
// than silently at send time.
func NewPostmarkSender(cfg config.EmailConfig) (Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token is required", ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: account token is required", ErrInvalidConfig)
	}
	if cfg.FromEmail == "" || !emailRegex.MatchString(cfg.FromEmail) {
		return nil, fmt.Errorf("%w: sender address %q is not valid", ErrInvalidConfig, cfg.FromEmail)
	}

	return &postmarkSender{
		client:     postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		senderName: cfg.SenderName,
		fromEmail:  cfg.FromEmail,
	}, nil
}

// Send makes a single delivery attempt through Postmark's transactional API.
func (s *postmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := s.fromEmail
	if s.senderName != "" {
		from = fmt.Sprintf("%s <%s>", s.senderName, s.fromEmail)
	}
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       to,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
