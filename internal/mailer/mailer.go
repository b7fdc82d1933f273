package mailer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrSendFailed wraps any provider-level delivery failure.
	ErrSendFailed = errors.New("mailer: failed to send email")
	// ErrInvalidConfig is returned when the sender cannot be constructed.
	ErrInvalidConfig = errors.New("mailer: invalid config")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is a fully rendered email ready for a single delivery attempt.
type Message struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	Tag      string
}

// Validate checks the message carries the minimum deliverable content.
func (m Message) Validate() error {
	if m.To == "" || !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: recipient %q is not a valid address", ErrSendFailed, m.To)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrSendFailed)
	}
	if m.HTMLBody == "" {
		return fmt.Errorf("%w: body is required", ErrSendFailed)
	}
	return nil
}

// Sender is the external transactional email capability. Implementations make
// at most one delivery attempt per call; retrying is not their concern.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
