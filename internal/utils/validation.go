package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhoneField)
	validate.RegisterValidation("vehicle_type", validateVehicleTypeField)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhoneField(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateVehicleTypeField(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sedan", "suv", "van", "luxury":
		return true
	}
	return false
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var phoneCharsRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\-]*$`)

// IsValidPhone accepts a generic international number: digits with an optional
// leading +, spaces and hyphens allowed, 7 to 13 digits in total.
func IsValidPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" || !phoneCharsRegex.MatchString(trimmed) {
		return false
	}

	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 13
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	return strings.TrimSpace(htmlRegex.ReplaceAllString(input, ""))
}
