package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DefaultMinLength is the minimum trimmed length of name-like fields.
const DefaultMinLength = 2

// Regex patterns
var (
	// local@domain.tld with no whitespace and a single @ boundary per part
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// digits, spaces, hyphens, plus sign and parentheses only
	phoneCharsRegex = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

const minPhoneDigits = 10

// ValidateRequiredText checks a free-text field such as a name or job title.
// minLen <= 0 falls back to DefaultMinLength.
func ValidateRequiredText(value, label string, minLen int) string {
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Sprintf("%s is required", label)
	}
	if utf8.RuneCountInString(trimmed) < minLen {
		return fmt.Sprintf("%s must be at least %d characters long", label, minLen)
	}
	return ""
}

// ValidateEmail checks for a pragmatic local@domain.tld shape, not full RFC 5322.
func ValidateEmail(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Email is required"
	}
	// \s in the pattern is ASCII only; this catches NBSP, \v and the other Unicode spaces.
	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 || !emailRegex.MatchString(trimmed) {
		return "Please provide a valid email address"
	}
	return ""
}

// ValidatePhone checks the allowed character set and that at least ten digits are present.
func ValidatePhone(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Phone number is required"
	}
	if !phoneCharsRegex.MatchString(trimmed) {
		return "Please provide a valid phone number"
	}
	if CountDigits(trimmed) < minPhoneDigits {
		return fmt.Sprintf("Phone number must contain at least %d digits", minPhoneDigits)
	}
	return ""
}

// ValidateNonEmptySet returns message when the collection has no members.
func ValidateNonEmptySet(collection []string, message string) string {
	if len(collection) == 0 {
		return message
	}
	return ""
}

// ValidateChoice checks a mandatory single-choice selection against its options.
func ValidateChoice(value, message string, allowed ...string) string {
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return message
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// RegisterValidators registers the portal's custom tags on the validator instance.
// options maps a tag name to the fixed list a multi-choice field draws from.
func RegisterValidators(v *validator.Validate, options map[string][]string) {
	v.RegisterTagNameFunc(jsonFieldName)

	_ = v.RegisterValidation("required_text", RequiredText)
	_ = v.RegisterValidation("portal_email", PortalEmail)
	_ = v.RegisterValidation("portal_phone", PortalPhone)
	_ = v.RegisterValidation("yes_no", YesNo)

	for tag, allowed := range options {
		_ = v.RegisterValidation(tag, OneOfList(allowed))
	}
}

// New returns a validator with the portal tags already registered.
func New(options map[string][]string) *validator.Validate {
	v := validator.New()
	RegisterValidators(v, options)
	return v
}

// RequiredText is the tag form of ValidateRequiredText. Param overrides the minimum length.
func RequiredText(fl validator.FieldLevel) bool {
	minLen := DefaultMinLength
	if p := fl.Param(); p != "" {
		fmt.Sscanf(p, "%d", &minLen)
	}
	return ValidateRequiredText(fl.Field().String(), "", minLen) == ""
}

// PortalEmail is the tag form of ValidateEmail.
func PortalEmail(fl validator.FieldLevel) bool {
	return ValidateEmail(fl.Field().String()) == ""
}

// PortalPhone is the tag form of ValidatePhone.
func PortalPhone(fl validator.FieldLevel) bool {
	return ValidatePhone(fl.Field().String()) == ""
}

// YesNo accepts exactly "Yes" or "No".
func YesNo(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "Yes" || v == "No"
}

// OneOfList builds a validator accepting only members of allowed. Used with dive on slices.
func OneOfList(allowed []string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
