// Package validation runs the field-level checks that gate every mutating
// operation. Failures are reported per field and never touch state.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "artisan/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-(). ]{7,20}$`)

// Validator wraps go-playground/validator with the storefront's custom
// rules and JSON field naming.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("personname", validPersonName)
	_ = v.RegisterValidation("password", validPassword)
	_ = v.RegisterValidation("phone", validPhone)
	return &Validator{validate: v}
}

// Struct validates s and returns a VALIDATION_FAILED AppError carrying the
// per-field messages, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.BadRequest("Invalid request", err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldPath(e.Namespace())
		if _, seen := fields[field]; !seen {
			fields[field] = message(e)
		}
	}
	return apperrors.Validation(fields)
}

// fieldPath drops the root struct name: "CheckoutRequest.address.street"
// becomes "address.street".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "personname":
		return "Must be at least 2 characters"
	case "password":
		return "Password must be at least 8 characters and contain a letter and a number"
	case "eqfield":
		return "Passwords do not match"
	case "phone":
		return "Please enter a valid phone number"
	case "min":
		switch e.Field() {
		case "cardNumber":
			return "Please enter a valid card number"
		case "cvv":
			return "Please enter a valid CVV"
		}
		if e.Kind() != reflect.String {
			return "Must be at least " + e.Param()
		}
		return "Must be at least " + e.Param() + " characters"
	}
	return "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
}

func validPersonName(fl validator.FieldLevel) bool {
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= 2
}

func validPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
