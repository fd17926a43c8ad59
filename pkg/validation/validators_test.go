package validation_test

import (
	"testing"

	"alvant-portal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiredText(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		minLen int
		want   string
	}{
		{"empty", "", 2, "Company name is required"},
		{"whitespace only", "   \t", 2, "Company name is required"},
		{"too short after trim", "  A ", 2, "Company name must be at least 2 characters long"},
		{"exactly min", "Al", 2, ""},
		{"zero min falls back to default", "A", 0, "Company name must be at least 2 characters long"},
		{"counts runes not bytes", "Ñé", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateRequiredText(tt.value, "Company name", tt.minLen))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "Email is required"},
		{"   ", "Email is required"},
		{"a@b.co", ""},
		{"  a@b.co  ", ""},
		{"a@b", "Please provide a valid email address"},
		{"a b@c.de", "Please provide a valid email address"},
		{"a@@b.de", "Please provide a valid email address"},
		{"@b.de", "Please provide a valid email address"},
		{"ad\u00a0min@example.com", "Please provide a valid email address"},
		{"ad\vmin@example.com", "Please provide a valid email address"},
		{"admin@exa\u2003mple.com", "Please provide a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateEmail(tt.value))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "Phone number is required"},
		{"+971 (50) 123-4567", ""},
		{"0501234567", ""},
		{"050123456", "Phone number must contain at least 10 digits"},
		{"050-123-4567 ext", "Please provide a valid phone number"},
		{"050.123.4567", "Please provide a valid phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidatePhone(tt.value))
		})
	}
}

func TestValidateSetAndChoice(t *testing.T) {
	assert.Equal(t, "Select at least one", validation.ValidateNonEmptySet(nil, "Select at least one"))
	assert.Equal(t, "", validation.ValidateNonEmptySet([]string{"x"}, "Select at least one"))

	assert.Equal(t, "", validation.ValidateChoice("Yes", validation.ChoiceMessage, "Yes", "No"))
	assert.Equal(t, validation.ChoiceMessage, validation.ValidateChoice("", validation.ChoiceMessage, "Yes", "No"))
	assert.Equal(t, validation.ChoiceMessage, validation.ValidateChoice("yes", validation.ChoiceMessage, "Yes", "No"))
}

type sample struct {
	CompanyName    string   `json:"companyName" validate:"required_text"`
	Email          string   `json:"email" validate:"portal_email"`
	Phone          string   `json:"phone,omitempty" validate:"omitempty,portal_phone"`
	HasUAE         string   `json:"hasUAE" validate:"yes_no"`
	LineOfBusiness []string `json:"lineOfBusiness" validate:"min=1,dive,line_of_business"`
	Message        string   `json:"message" validate:"max=10"`
}

func TestStructValidationMatchesPredicates(t *testing.T) {
	v := validation.New(map[string][]string{"line_of_business": {"Retail", "Wholesale"}})

	t.Run("valid", func(t *testing.T) {
		s := sample{CompanyName: "Acme", Email: "a@b.co", HasUAE: "No", LineOfBusiness: []string{"Retail"}}
		assert.NoError(t, v.Struct(s))
	})

	t.Run("messages keyed by json name", func(t *testing.T) {
		s := sample{
			CompanyName:    " A ",
			Email:          "bad",
			Phone:          "12",
			LineOfBusiness: []string{},
			Message:        "far too long for ten",
		}
		fields := validation.FormatFieldErrors(v.Struct(s))
		require.NotNil(t, fields)

		assert.Equal(t, "Company name must be at least 2 characters long", fields["companyName"])
		assert.Equal(t, "Please provide a valid email address", fields["email"])
		assert.Equal(t, "Phone number must contain at least 10 digits", fields["phone"])
		assert.Equal(t, validation.ChoiceMessage, fields["hasUAE"])
		assert.Equal(t, "Select at least one", fields["lineOfBusiness"])
		assert.Equal(t, "Message must be at most 10 characters long", fields["message"])
	})

	t.Run("unicode space in email", func(t *testing.T) {
		s := sample{CompanyName: "Acme", Email: "a b@c.co", HasUAE: "No", LineOfBusiness: []string{"Retail"}}
		fields := validation.FormatFieldErrors(v.Struct(s))
		assert.Equal(t, "Please provide a valid email address", fields["email"])
	})

	t.Run("unknown option", func(t *testing.T) {
		s := sample{CompanyName: "Acme", Email: "a@b.co", HasUAE: "Yes", LineOfBusiness: []string{"Retail", "Mining"}}
		fields := validation.FormatFieldErrors(v.Struct(s))
		assert.Equal(t, "Unknown option: Mining", fields["lineOfBusiness"])
	})

	t.Run("non validation error", func(t *testing.T) {
		assert.Nil(t, validation.FormatFieldErrors(assert.AnError))
	})
}

func TestFieldErrors(t *testing.T) {
	fe := validation.FieldErrors{"email": "Email is required"}
	fe.Set("name", "Name is required")
	fe.Set("email", "")
	assert.Equal(t, validation.FieldErrors{"name": "Name is required"}, fe)

	clone := fe.Clone()
	clone.Merge(validation.FieldErrors{"phone": "Phone number is required"})
	assert.Len(t, fe, 1)
	assert.Len(t, clone, 2)
}
