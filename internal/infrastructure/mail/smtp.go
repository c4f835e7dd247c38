package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/membersys/account-service/internal/core/ports"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers transactional email over SMTP. Safe for concurrent use
// by the dispatcher workers; each Send dials its own connection.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds an SMTP-backed Mailer. Credentials are optional; when
// the username is empty no authentication is attempted (local relays).
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers a single message.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Message) error {
	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
