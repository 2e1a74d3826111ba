package validation

import (
	"errors"
	"strings"

	"tracefield-site/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldKinds converts validator.ValidationErrors into the per-field kinds
// shown next to each form input. ok is false when err is not a validation
// failure.
func FieldKinds(err error) (domain.ValidationErrors, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	kinds := make(domain.ValidationErrors, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldName(e)
		kind := kindForTag(e.Tag())
		// required wins over a format error on the same field
		if existing, seen := kinds[field]; seen && existing == domain.RequiredFieldMissing {
			continue
		}
		kinds[field] = kind
	}
	return kinds, true
}

// kindForTag maps a validator tag to the failure kind
func kindForTag(tag string) domain.FieldErrorKind {
	switch tag {
	case "required":
		return domain.RequiredFieldMissing
	default:
		return domain.InvalidFormat
	}
}

// fieldName strips slice indexes so "modules[2]" reports as "modules"
func fieldName(e validator.FieldError) string {
	name := e.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
