package notify

import (
	"context"
	"errors"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender relays messages through an authenticated SMTP server.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send returns the Message-ID of the delivered message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	m, err := s.build(msg)
	if err != nil {
		return "", err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return "", deliveryError("smtp client: %v", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", deliveryError("smtp send: %v", err)
	}
	return m.GetMessageID(), nil
}

func (s *SMTPSender) build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.From.Name, msg.From.Address); err != nil {
		return nil, deliveryError("invalid sender %q: %v", msg.From.Address, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, deliveryError("invalid recipient %q: %v", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.SetMessageID()
	return m, nil
}
