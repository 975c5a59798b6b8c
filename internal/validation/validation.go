// Package validation checks request DTOs against their `validate` struct
// tags and reports failures as per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Struct returns a *errors.ValidationError listing every failing field, or
// nil when s is valid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &apperror.ValidationError{Fields: make([]apperror.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, apperror.FieldError{
			Field: fieldPath(fe),
			Error: message(fe),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read as "products[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", label)
	case "email":
		return fmt.Sprintf("%s is invalid", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "dive":
		return fmt.Sprintf("%s is invalid", label)
	default:
		return fmt.Sprintf("%s failed on %s", label, fe.Tag())
	}
}
