package core

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	goerrors "github.com/goliatone/go-errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks validate tags on input and reports failures as a
// bad input error carrying one field error per violation.
func ValidateStruct(message string, input any) error {
	err := structValidator().Struct(input)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return NewBadInputError(message + ": " + err.Error())
	}
	fields := make([]goerrors.FieldError, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, goerrors.FieldError{
			Field:   violation.Field(),
			Message: violationMessage(violation),
			Value:   violation.Value(),
		})
	}
	return NewBadInputError(message, fields...)
}

func violationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "required"
	case "required_without_all":
		return "one of " + violation.Field() + ", " + strings.ReplaceAll(violation.Param(), " ", ", ") + " is required"
	case "oneof":
		return "must be one of " + violation.Param()
	case "min", "gte":
		return "must be at least " + violation.Param()
	case "max", "lte":
		return "must be at most " + violation.Param()
	default:
		return "failed " + violation.Tag() + " validation"
	}
}

func IsNumericID(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
