package middleware

import (
	"net/http"

	"tracefield-site/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitorCookieName identifies a browser across requests so its contact
// form status survives the post/redirect cycle.
const VisitorCookieName = "tf_visitor"

var visitorKey = string(domain.KeyVisitorID)

// Visitor assigns an opaque visitor ID cookie on first contact.
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, id, 0, "/", "", secure, true)
		}
		c.Set(visitorKey, id)
		c.Next()
	}
}

// VisitorFrom returns the visitor ID set by Visitor.
func VisitorFrom(c *gin.Context) string {
	return c.GetString(visitorKey)
}
