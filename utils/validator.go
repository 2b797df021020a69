package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports json field names
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate validates the request body. Failures come back as apperrors validation errors.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}
	return apperrors.NewValidationError(FormatValidationErrors(verrs))
}

// FormatValidationErrors lists the offending fields, e.g. "Missing or invalid fields: date, time"
func FormatValidationErrors(verrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
	}
	return fmt.Sprintf("Missing or invalid fields: %s", strings.Join(fields, ", "))
}
