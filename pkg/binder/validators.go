package binder

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// filepathValidator ensures the value is an absolute filesystem path or the
// empty string. The empty string is allowed so that the validator can be used
// on optional fields; combine with `required` to disallow it.
func filepathValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return filepath.IsAbs(value)
}
