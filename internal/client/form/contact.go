package form

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/validation"
	"context"
	"fmt"
	"unicode/utf8"
)

const (
	maxMessageLength = 5000
	// ContactNotice is shown after a message went through.
	ContactNotice = "Thanks, your message was sent."
)

// ContactSubmitter sends a contact message; *api.Client implements it.
type ContactSubmitter interface {
	SubmitContact(ctx context.Context, m *domain.ContactMessage) (*api.Ack, error)
}

var contactSchema = &schema[domain.ContactMessage]{
	name:  "contact",
	order: []string{"name", "email", "phone", "message", "categories"},
	text: map[string]textField[domain.ContactMessage]{
		"name": {
			get: func(m *domain.ContactMessage) string { return m.Name },
			set: func(m *domain.ContactMessage, v string) { m.Name = v },
			validate: func(v string) string {
				return validation.ValidateRequiredText(v, validation.FieldLabels["Name"], validation.DefaultMinLength)
			},
		},
		"email": {
			get:      func(m *domain.ContactMessage) string { return m.Email },
			set:      func(m *domain.ContactMessage, v string) { m.Email = v },
			validate: validation.ValidateEmail,
		},
		// optional, but checked when present
		"phone": {
			get: func(m *domain.ContactMessage) string { return m.Phone },
			set: func(m *domain.ContactMessage, v string) { m.Phone = v },
			validate: func(v string) string {
				if isBlank(v) {
					return ""
				}
				return validation.ValidatePhone(v)
			},
		},
		"message": {
			get: func(m *domain.ContactMessage) string { return m.Message },
			set: func(m *domain.ContactMessage, v string) { m.Message = v },
			validate: func(v string) string {
				if utf8.RuneCountInString(v) > maxMessageLength {
					return fmt.Sprintf("Message must be at most %d characters long", maxMessageLength)
				}
				return ""
			},
		},
	},
	sets: map[string]setField[domain.ContactMessage]{
		"categories": {
			get:      func(m *domain.ContactMessage) []string { return m.Categories },
			set:      func(m *domain.ContactMessage, v []string) { m.Categories = v },
			options:  domain.ContactCategoryOptions,
			validate: func([]string) string { return "" },
		},
	},
	empty: func() domain.ContactMessage {
		return domain.ContactMessage{Categories: []string{}}
	},
	notice: ContactNotice,
}

// NewContactForm returns an empty contact form session that submits through sub.
func NewContactForm(sub ContactSubmitter) *Session[domain.ContactMessage] {
	return newSession(contactSchema, func(ctx context.Context, m *domain.ContactMessage) error {
		_, err := sub.SubmitContact(ctx, m)
		return err
	})
}
