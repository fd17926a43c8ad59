package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to a human-readable message.
// It is the shape of the "errors" object the API returns and the form sessions keep.
type FieldErrors map[string]string

// Set records msg for field, or clears the field when msg is empty.
func (fe FieldErrors) Set(field, msg string) {
	if msg == "" {
		delete(fe, field)
		return
	}
	fe[field] = msg
}

// Merge copies every entry of other into fe, overwriting existing messages.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		fe.Set(k, v)
	}
}

// Clone returns an independent copy.
func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// FieldLabels maps struct field names to the labels used in messages
var FieldLabels = map[string]string{
	// Registrant
	"CompanyName": "Company name",
	"FirstName":   "First name",
	"LastName":    "Last name",
	"JobTitle":    "Job title",
	"Phone":       "Phone number",

	// ContactMessage
	"Name":    "Name",
	"Message": "Message",

	// Admin
	"Email": "Email",
	"OTP":   "OTP",
}

// SetMessages holds the message shown when a multi-choice field is left empty.
var SetMessages = map[string]string{
	"LineOfBusiness":  "Select at least one",
	"ProductInterest": "Select at least one",
	"Categories":      "Please select at least one category",
}

// ChoiceMessage is shown for an unanswered single-choice question.
const ChoiceMessage = "Please select an option"

// FormatFieldErrors converts validator.ValidationErrors into FieldErrors keyed by JSON name.
// Messages come from the same predicates the client runs, so both sides agree.
// Returns nil when err is not a validation error.
func FormatFieldErrors(err error) FieldErrors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(FieldErrors, len(validationErrors))
	for _, e := range validationErrors {
		field := baseField(e.Field())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = formatSingleError(e)
	}
	return out
}

// formatSingleError formats a single validation error to a user-facing message
func formatSingleError(e validator.FieldError) string {
	structField := baseField(e.StructField())
	label := getFieldLabel(structField)
	value := fmt.Sprint(e.Value())

	switch e.Tag() {
	case "required_text":
		minLen := DefaultMinLength
		if e.Param() != "" {
			fmt.Sscanf(e.Param(), "%d", &minLen)
		}
		return ValidateRequiredText(value, label, minLen)

	case "portal_email":
		return ValidateEmail(value)

	case "portal_phone":
		return ValidatePhone(value)

	case "yes_no":
		return ChoiceMessage

	case "required", "min", "gt":
		if msg, ok := SetMessages[structField]; ok {
			return msg
		}
		return fmt.Sprintf("%s is required", label)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, e.Param())

	case "unique":
		return fmt.Sprintf("%s contains duplicate options", label)

	default:
		if _, isSet := SetMessages[structField]; isSet {
			return fmt.Sprintf("Unknown option: %s", value)
		}
		return fmt.Sprintf("%s is invalid", label)
	}
}

// getFieldLabel returns the label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// baseField strips a dive index such as "lineOfBusiness[2]".
func baseField(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r = r + ('a' - 'A')
		}
		result.WriteRune(r)
	}
	return result.String()
}
