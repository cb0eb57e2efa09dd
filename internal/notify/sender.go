// Package notify delivers error alerts to operators.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gate_errors "user-gate/pkg/errors"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// Message is an outgoing alert.
type Message struct {
	From    Address `json:"from"`
	To      string  `json:"to"`
	Subject string  `json:"subject"`
	Text    string  `json:"text"`
}

// Sender delivers a message and reports an outcome description.
// Failures wrap gate_errors.ErrDelivery.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// AlertSubject is the subject line of every error alert.
const AlertSubject = "ERROR EMAIL FROM YOUR APPLICATION"

// NewAlert formats the alert for an application error.
func NewAlert(from Address, to string, appErr *gate_errors.AppError) Message {
	text := fmt.Sprintf(
		"Greetings, an error occurred in your application.\n\n Name: %s\n Message: %s\n Time: %s.\n Stack: %s \n Please fix it.",
		appErr.Name,
		appErr.Message,
		appErr.Timestamp.Format(time.RFC1123Z),
		appErr.Stack,
	)
	return Message{
		From:    from,
		To:      to,
		Subject: AlertSubject,
		Text:    text,
	}
}

// MultiSender fans a message out to every sender. It fails only when at
// least one sender fails; the successful outcomes are still reported.
type MultiSender []Sender

func (m MultiSender) Send(ctx context.Context, msg Message) (string, error) {
	var outcomes []string
	var errs []error
	for _, s := range m {
		outcome, err := s.Send(ctx, msg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outcomes = append(outcomes, outcome)
	}
	return strings.Join(outcomes, "; "), errors.Join(errs...)
}

func deliveryError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", gate_errors.ErrDelivery, fmt.Sprintf(format, args...))
}
