package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers custom validation rules
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("timeformat", validateTimeFormat)
	v.RegisterValidation("dateformat", validateDateFormat)
	v.RegisterValidation("timeafter", validateTimeAfter)
}

// validateTimeFormat checks if string is valid HH:MM format
func validateTimeFormat(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// validateDateFormat checks if string is valid YYYY-MM-DD format
func validateDateFormat(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateTimeAfter compares two HH:MM fields lexicographically, which
// orders them correctly. gtfield would compare string lengths instead.
func validateTimeAfter(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	other := parent.FieldByName(fl.Param())
	if !other.IsValid() {
		return false
	}
	return fl.Field().String() > other.String()
}

func TranslateValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var messages []string
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "email":
				messages = append(messages, "invalid email format")
			case "min":
				messages = append(messages, field+" must be at least "+fe.Param()+" characters")
			case "max":
				messages = append(messages, field+" must be at most "+fe.Param()+" characters")
			case "numeric":
				messages = append(messages, field+" must contain only numbers")
			case "timeformat":
				messages = append(messages, field+" must be in HH:MM format (e.g., 14:00)")
			case "dateformat":
				messages = append(messages, field+" must be in YYYY-MM-DD format (e.g., 2024-05-01)")
			case "timeafter":
				messages = append(messages, field+" must be later than "+fe.Param())
			case "oneof":
				messages = append(messages, field+" must be one of: "+fe.Param())
			case "uuid":
				messages = append(messages, field+" must be a valid UUID")
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
