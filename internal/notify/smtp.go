// Package notify delivers alert messages to subscribers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrDelivery indicates the message could not be handed to the mail server.
// Delivery failures are never swallowed: they mean at-risk subscribers were
// not informed.
var ErrDelivery = errors.New("notification delivery failed")

// SMTPConfig holds mail server configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Addr returns the host:port dial address.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier delivers messages over SMTP.
type SMTPNotifier struct {
	config SMTPConfig
	send   sendFunc
}

// NewSMTPNotifier creates a new SMTP notifier.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// Notify sends one message to all recipients.
func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string, recipients []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.config.Username != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	}

	var msg strings.Builder
	msg.WriteString("From: " + n.config.From + "\r\n")
	msg.WriteString("To: " + strings.Join(recipients, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := n.send(n.config.Addr(), auth, n.config.From, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return nil
}
