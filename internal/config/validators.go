package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom tags used by Config and makes error
// messages refer to fields by their label.
func registerValidators(validate *validator.Validate) error {
	if err := validate.RegisterValidation("mode", validateMode); err != nil {
		return fmt.Errorf("registering mode validation: %w", err)
	}

	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateMode accepts a single mode letter, c or d, in either case.
func validateMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "c", "C", "d", "D":
		return true
	default:
		return false
	}
}

// validateExclusive checks that the field and the named sibling are not both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() || field.Kind() != otherField.Kind() {
		return true
	}

	return field.IsZero() || otherField.IsZero()
}
