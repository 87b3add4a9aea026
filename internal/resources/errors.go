package resources

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation marks request data that breaks a field rule.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks an unexpected store failure.
	ErrPersistence = errors.New("persistence failure")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(jsonFieldName)
}

// Validate checks v's `validate` tags and reports the first broken rule as ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrValidation, fe.Field())
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", ErrValidation, fe.Field(), fe.Param())
	case "gte":
		return fmt.Errorf("%w: %s must be at least %s", ErrValidation, fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", ErrValidation, fe.Field())
	}
}

// Persistence wraps a store error so callers can tell it from validation errors.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// Detail strips the sentinel prefix from err for response bodies.
func Detail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrPersistence} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
