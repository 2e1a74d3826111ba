package validation

import (
	"reflect"
	"regexp"
	"strings"

	"tracefield-site/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// localpart@domain.tld: no whitespace or extra @, a dot in the domain,
	// and a top-level segment of at least two letters.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)
)

// New returns a validator with the contact form rules registered and field
// names reported by their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("relay_email", RelayEmail)
	_ = v.RegisterValidation("employee_bracket", EmployeeBracket)
	_ = v.RegisterValidation("catalog_module", CatalogModule)
	_ = v.RegisterValidation("contact_preference", ContactPreference)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// IsEmail reports whether s has the localpart@domain.tld shape.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// RelayEmail validates the email shape accepted by the contact form
func RelayEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Presence is checked by required
	}
	return IsEmail(val)
}

// EmployeeBracket validates one of the company size brackets
func EmployeeBracket(fl validator.FieldLevel) bool {
	return domain.EmployeeBracket(fl.Field().String()).Valid()
}

// CatalogModule validates a module name against the interest catalog
func CatalogModule(fl validator.FieldLevel) bool {
	return domain.Module(fl.Field().String()).Valid()
}

// ContactPreference validates one of the callback channels
func ContactPreference(fl validator.FieldLevel) bool {
	return domain.ContactPreference(fl.Field().String()).Valid()
}
