package form

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/validation"
	"context"
	"strings"
)

// RegistrationNotice is shown after a registration went through.
const RegistrationNotice = "Thanks, your registration was submitted."

// RegistrationSubmitter sends a registration; *api.Client implements it.
type RegistrationSubmitter interface {
	SubmitRegistration(ctx context.Context, r *domain.Registrant) (*api.Ack, error)
}

func requiredText(label string) func(string) string {
	return func(v string) string {
		return validation.ValidateRequiredText(v, label, validation.DefaultMinLength)
	}
}

func yesNo(v string) string {
	return validation.ValidateChoice(v, validation.ChoiceMessage, domain.ChoiceYes, domain.ChoiceNo)
}

func nonEmpty(message string) func([]string) string {
	return func(v []string) string {
		return validation.ValidateNonEmptySet(v, message)
	}
}

var registrationSchema = &schema[domain.Registrant]{
	name: "registration",
	order: []string{
		"companyName", "firstName", "lastName", "jobTitle", "phone", "email",
		"hasUAE", "multiCountry", "lineOfBusiness", "productInterest",
	},
	text: map[string]textField[domain.Registrant]{
		"companyName": {
			get:      func(r *domain.Registrant) string { return r.CompanyName },
			set:      func(r *domain.Registrant, v string) { r.CompanyName = v },
			validate: requiredText(validation.FieldLabels["CompanyName"]),
		},
		"firstName": {
			get:      func(r *domain.Registrant) string { return r.FirstName },
			set:      func(r *domain.Registrant, v string) { r.FirstName = v },
			validate: requiredText(validation.FieldLabels["FirstName"]),
		},
		"lastName": {
			get:      func(r *domain.Registrant) string { return r.LastName },
			set:      func(r *domain.Registrant, v string) { r.LastName = v },
			validate: requiredText(validation.FieldLabels["LastName"]),
		},
		"jobTitle": {
			get:      func(r *domain.Registrant) string { return r.JobTitle },
			set:      func(r *domain.Registrant, v string) { r.JobTitle = v },
			validate: requiredText(validation.FieldLabels["JobTitle"]),
		},
		"phone": {
			get:      func(r *domain.Registrant) string { return r.Phone },
			set:      func(r *domain.Registrant, v string) { r.Phone = v },
			validate: validation.ValidatePhone,
		},
		"email": {
			get:      func(r *domain.Registrant) string { return r.Email },
			set:      func(r *domain.Registrant, v string) { r.Email = v },
			validate: validation.ValidateEmail,
		},
		"hasUAE": {
			get:      func(r *domain.Registrant) string { return r.HasUAE },
			set:      func(r *domain.Registrant, v string) { r.HasUAE = v },
			validate: yesNo,
		},
		"multiCountry": {
			get:      func(r *domain.Registrant) string { return r.MultiCountry },
			set:      func(r *domain.Registrant, v string) { r.MultiCountry = v },
			validate: yesNo,
		},
	},
	sets: map[string]setField[domain.Registrant]{
		"lineOfBusiness": {
			get:      func(r *domain.Registrant) []string { return r.LineOfBusiness },
			set:      func(r *domain.Registrant, v []string) { r.LineOfBusiness = v },
			options:  domain.LineOfBusinessOptions,
			validate: nonEmpty(validation.SetMessages["LineOfBusiness"]),
		},
		"productInterest": {
			get:      func(r *domain.Registrant) []string { return r.ProductInterest },
			set:      func(r *domain.Registrant, v []string) { r.ProductInterest = v },
			options:  domain.ProductInterestOptions,
			validate: nonEmpty(validation.SetMessages["ProductInterest"]),
		},
	},
	empty: func() domain.Registrant {
		return domain.Registrant{LineOfBusiness: []string{}, ProductInterest: []string{}}
	},
	notice: RegistrationNotice,
}

// NewRegistrationForm returns an empty register-your-interest session that submits through sub.
func NewRegistrationForm(sub RegistrationSubmitter) *Session[domain.Registrant] {
	return newSession(registrationSchema, func(ctx context.Context, r *domain.Registrant) error {
		_, err := sub.SubmitRegistration(ctx, r)
		return err
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
