package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Venue names: letters, numbers, spaces, and common punctuation: . ' - / & ( ) ,
	venueRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_venue", ValidVenue)
	_ = v.RegisterValidation("future", Future)
}

// ValidVenue validates that a venue string contains only printable venue characters
func ValidVenue(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return venueRegex.MatchString(val)
}

// Future validates that a time.Time field lies strictly after now
func Future(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now())
}
