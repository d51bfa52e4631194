package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate on bound request structs.
// Failures are flattened into one client-facing error string.
type requestValidator struct {
	check *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{check: validator.New()}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.check.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe renders the tags the request schemas actually use; anything
// else falls through to a generic message naming the failed rule.
func describe(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " is not a valid email address"
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (rule %s)", name, fe.Tag())
}
