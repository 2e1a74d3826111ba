package response

import (
	"sort"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// FieldError is one entry of a validation failure.
type FieldError struct {
	Field string                `json:"field"`
	Kind  domain.FieldErrorKind `json:"kind"`
	// Message is the translated text shown next to the field.
	Message string `json:"message"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// formOrder is the order fields appear on the contact form.
var formOrder = []string{"name", "company", "email", "phone", "employees", "modules", "description", "contactPreference"}

// FieldErrors translates verrs into form order.
func FieldErrors(tr locale.Translator, verrs domain.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	add := func(field string) {
		kind, ok := verrs[field]
		if !ok || seen[field] {
			return
		}
		seen[field] = true
		out = append(out, FieldError{
			Field:   field,
			Kind:    kind,
			Message: tr.Tk(locale.FieldErrorKey(field, kind)),
		})
	}
	for _, field := range formOrder {
		add(field)
	}
	rest := make([]string, 0)
	for field := range verrs {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		add(field)
	}
	return out
}
