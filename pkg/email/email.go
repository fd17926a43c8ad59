package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"alvant-portal/config"
	"alvant-portal/internal/domain"
)

// Service renders and sends the portal's two emails: admin passcodes and contact notifications.
type Service struct {
	transport Transport
	from      string
	contactTo string
}

// NewEmailService picks Resend when an API key is set, SMTP when a relay is configured,
// and falls back to logging.
func NewEmailService(cfg *config.Config) *Service {
	var transport Transport = LogTransport{}
	switch {
	case cfg.ResendAPIKey != "":
		transport = NewResendTransport(cfg.ResendAPIKey)
	case cfg.SMTPHost != "" && cfg.SMTPUsername != "" && cfg.SMTPPassword != "":
		transport = NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return NewService(transport, cfg.MailFromEmail, cfg.ContactEmailTo)
}

func NewService(transport Transport, from, contactTo string) *Service {
	return &Service{transport: transport, from: from, contactTo: contactTo}
}

// IsConfigured reports whether mail actually leaves the process.
func (s *Service) IsConfigured() bool {
	return s.transport.Name() != "log"
}

// TransportName is "resend", "smtp" or "log".
func (s *Service) TransportName() string {
	return s.transport.Name()
}

var (
	otpTmpl     = template.Must(template.New("otp").Parse(otpEmailTemplate))
	contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))
)

type otpEmailData struct {
	Code    string
	Minutes int
}

type contactEmailData struct {
	Name       string
	Email      string
	Phone      string
	Categories string
	Message    string
	ReceivedAt string
}

// SendOTP emails a login passcode to an admin.
func (s *Service) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	var body bytes.Buffer
	if err := otpTmpl.Execute(&body, otpEmailData{Code: code, Minutes: int(ttl.Minutes())}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}
	return s.transport.Send(ctx, Message{
		From:    s.from,
		To:      []string{to},
		Subject: "Your admin login code",
		HTML:    body.String(),
	})
}

// NotifyContact forwards a contact message to the site inbox. No-op without a recipient.
func (s *Service) NotifyContact(ctx context.Context, m *domain.ContactMessage) error {
	if s.contactTo == "" {
		return nil
	}
	data := contactEmailData{
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Categories: strings.Join(m.Categories, ", "),
		Message:    m.Message,
		ReceivedAt: m.CreatedAt.Format(time.RFC1123),
	}
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}
	return s.transport.Send(ctx, Message{
		From:    s.from,
		To:      []string{s.contactTo},
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("Contact Form: %s", m.Name),
		HTML:    body.String(),
	})
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Admin login code</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <p>Use this code to log in to the Alvant Export admin dashboard:</p>
    <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
    <p>The code expires in {{.Minutes}} minutes. If you did not request it, ignore this email.</p>
</body>
</html>`

const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #2e7d32; margin-top: 10px; }
    </style>
</head>
<body>
    <h1>New Contact Form Submission</h1>
    <p><span class="label">From:</span> {{.Name}} ({{.Email}})</p>
    {{if .Phone}}<p><span class="label">Phone:</span> {{.Phone}}</p>{{end}}
    {{if .Categories}}<p><span class="label">Interested in:</span> {{.Categories}}</p>{{end}}
    {{if .Message}}<div class="message-box">{{.Message}}</div>{{end}}
    <p style="color: #888; font-size: 12px;">Received {{.ReceivedAt}}. Reply to this email to answer {{.Email}}.</p>
</body>
</html>`
