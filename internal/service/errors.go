package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports a request the caller has to fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs the struct tags of req and turns the first failure
// into a ValidationError. messages maps "field.tag" to the text returned.
func validateRequest(req interface{}, messages map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError(err.Error())
	}
	fe := fieldErrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return newValidationError(msg)
	}
	return newValidationError(fe.Field() + " is invalid")
}
