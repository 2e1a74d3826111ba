package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"tracefield-site/internal/delivery/http/response"
	"tracefield-site/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header scripts send the token in
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden field rendered into every form
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// csrfContextKey exposes the current token to templates.
const csrfContextKey = "CSRFToken"

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. Mutating
// requests must echo the csrf_token cookie either in the X-CSRF-Token header
// (scripts) or in the csrf_token form field (server rendered forms).
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)

		// Generate new token if none exists
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",     // Domain (empty = current domain)
				secure, // Secure (HTTPS only)
				false,  // HttpOnly = false so JS can read it
			)
			csrfCookie = newToken
		}
		c.Set(csrfContextKey, csrfCookie)

		// For safe methods, no validation needed
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			security.DefaultLogger().LogCSRFViolation(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(requestIDKey),
				c.Request.URL.Path,
			)
			message := "Invalid CSRF token"
			if submitted == "" {
				message = "Missing CSRF token"
			}
			response.Error(c, http.StatusForbidden, message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CSRFTokenFrom returns the token to embed in a form.
func CSRFTokenFrom(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}
