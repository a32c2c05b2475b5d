// Package validation validates request bodies with validator/v10 and turns
// failures into VALIDATION errors keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// maxStatDigits is the digit count of catalog.MaxStat.
const maxStatDigits = 12

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the catalog's custom tags registered.
//
//	stat: empty, or at most 12 digits optionally grouped with commas ("3,201").
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // tag name and func are static
	_ = v.RegisterValidation("stat", validateStat)

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION error on failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

func validateStat(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	digits := 0
	for _, group := range strings.Split(s, ",") {
		if group == "" {
			return false
		}
		for _, r := range group {
			if r < '0' || r > '9' {
				return false
			}
		}
		digits += len(group)
	}
	return digits <= maxStatDigits
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Wrap(err, apperr.CodeValidation, "validation failed")
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[fieldPath(e)] = friendlyMessage(e)
	}
	return apperr.ValidationWithDetails("validation failed", fields)
}

// fieldPath drops the root struct name: "Card.stats.wild" -> "stats.wild".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "stat":
		return "must be a whole number of at most 12 digits, optionally with comma separators"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
