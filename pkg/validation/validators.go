package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Conservative email shape: something@something.something, no spaces.
	// Deliberately not RFC 5322; the mail relay is the real arbiter.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Loose phone shape: optional +, then 10-15 digits/spaces/dashes/parens.
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{10,15}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("contact_phone", ContactPhone)
}

// ContactEmail validates the basic local@domain email shape.
func ContactEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// ContactPhone validates a phone number structure. Empty is valid; pair with
// omitempty so absence is not an error.
func ContactPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}
