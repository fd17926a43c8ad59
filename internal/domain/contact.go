package domain

import (
	"context"
	"time"
)

// ContactCategoryOptions is the fixed list offered on the contact form.
var ContactCategoryOptions = []string{
	"Grains",
	"Freeze-Dried Fruits",
	"Other Freeze-Dried Products",
	"Tea / Coffee",
	"Herbs",
	"Spices",
	"Dry Fruits",
	"Moringa Infused Products",
	"Handicraft",
	"Other Food Products",
}

// ContactMessage represents a contact form submission
type ContactMessage struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name" validate:"required_text"`
	Email      string    `json:"email" validate:"portal_email"`
	Phone      string    `json:"phone,omitempty" validate:"omitempty,portal_phone"`
	Message    string    `json:"message,omitempty" validate:"max=5000"`
	Categories []string  `json:"categories,omitempty" validate:"omitempty,dive,contact_category"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// ContactRepository persists contact messages.
type ContactRepository interface {
	Create(ctx context.Context, m *ContactMessage) error
	List(ctx context.Context) ([]ContactMessage, error)
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates and stores a message, then notifies the inbox if configured.
	SubmitContact(ctx context.Context, m *ContactMessage) error
	// ListContacts returns every message, newest first.
	ListContacts(ctx context.Context) ([]ContactMessage, error)
}
