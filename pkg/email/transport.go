package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"alvant-portal/pkg/logger"

	"github.com/resend/resend-go/v2"
)

// Message is one outgoing HTML email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// SMTPTransport sends through an SMTP relay with PLAIN auth (Brevo, SES, Mailgun...).
type SMTPTransport struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPTransport(host, port, username, password string) *SMTPTransport {
	return &SMTPTransport{host: host, port: port, username: username, password: password}
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Send(_ context.Context, msg Message) error {
	headers := []string{
		"From: " + msg.From,
		"To: " + strings.Join(msg.To, ", "),
	}
	if msg.ReplyTo != "" {
		headers = append(headers, "Reply-To: "+msg.ReplyTo)
	}
	headers = append(headers,
		"Subject: "+msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	)
	raw := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.HTML)

	auth := smtp.PlainAuth("", t.username, t.password, t.host)
	addr := fmt.Sprintf("%s:%s", t.host, t.port)
	if err := smtp.SendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ResendTransport sends via the Resend API.
type ResendTransport struct {
	client *resend.Client
}

func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey)}
}

func (t *ResendTransport) Name() string { return "resend" }

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := t.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	logger.Log.Info("resend_sent", "message_id", sent.Id, "subject", msg.Subject)
	return nil
}

// LogTransport writes the message to the application log instead of sending it.
// Development only: the OTP code ends up in the server console.
type LogTransport struct{}

func (LogTransport) Name() string { return "log" }

func (LogTransport) Send(_ context.Context, msg Message) error {
	logger.Log.Warn("email not sent, no transport configured",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.HTML,
	)
	return nil
}
