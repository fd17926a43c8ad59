package usecase

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"alvant-portal/pkg/logger"
	"alvant-portal/pkg/validation"
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type contactUsecase struct {
	repo     domain.ContactRepository
	notifier domain.ContactNotifier
	validate *validator.Validate
	now      func() time.Time
}

// NewContactUsecase creates a new contact usecase. notifier may be nil.
func NewContactUsecase(repo domain.ContactRepository, notifier domain.ContactNotifier, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		repo:     repo,
		notifier: notifier,
		validate: validate,
		now:      time.Now,
	}
}

// SubmitContact validates and stores the message, then forwards it to the inbox.
// A failed notification is logged; the message is already stored.
func (uc *contactUsecase) SubmitContact(ctx context.Context, m *domain.ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Message = strings.TrimSpace(m.Message)
	m.Categories = dedupe(m.Categories)

	if err := uc.validate.Struct(m); err != nil {
		return apperror.Validation(validationFailedMessage, validation.FormatFieldErrors(err))
	}

	m.ID = uuid.NewString()
	m.CreatedAt = uc.now().UTC()

	if err := uc.repo.Create(ctx, m); err != nil {
		return storeError(err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyContact(ctx, m); err != nil {
			logger.Log.Warn("contact notification failed", "contact_id", m.ID, "error", err)
		}
	}
	return nil
}

func (uc *contactUsecase) ListContacts(ctx context.Context) ([]domain.ContactMessage, error) {
	out, err := uc.repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return out, nil
}
