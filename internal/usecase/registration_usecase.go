package usecase

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"alvant-portal/pkg/validation"
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type registrationUsecase struct {
	repo     domain.RegistrantRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewRegistrationUsecase(repo domain.RegistrantRepository, validate *validator.Validate) domain.RegistrationUsecase {
	return &registrationUsecase{
		repo:     repo,
		validate: validate,
		now:      time.Now,
	}
}

func (u *registrationUsecase) Register(ctx context.Context, r *domain.Registrant) error {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.LineOfBusiness = dedupe(r.LineOfBusiness)
	r.ProductInterest = dedupe(r.ProductInterest)

	if err := u.validate.Struct(r); err != nil {
		return apperror.Validation(validationFailedMessage, validation.FormatFieldErrors(err))
	}

	// server-assigned, whatever the client sent
	r.ID = uuid.NewString()
	r.CreatedAt = u.now().UTC()

	if err := u.repo.Create(ctx, r); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *registrationUsecase) ListRegistrants(ctx context.Context) ([]domain.Registrant, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return out, nil
}
