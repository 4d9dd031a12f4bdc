package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// E.164 phone: leading +, then 7-15 digits
	phoneRegex = regexp.MustCompile(`^\+[0-9]{7,15}$`)

	// ISO 4217-shaped currency code: exactly 3 letters
	currencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("e164_phone", ValidPhone)
	_ = v.RegisterValidation("currency_code", ValidCurrency)
}

// ValidPhone validates an E.164 phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return phoneRegex.MatchString(val)
}

// ValidCurrency validates a 3-letter currency code (case handled by
// normalization, so both "usd" and "USD" pass here)
func ValidCurrency(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return currencyRegex.MatchString(val)
}
