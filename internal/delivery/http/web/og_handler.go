package web

import (
	"net/http"

	"tracefield-site/pkg/ogimage"

	"github.com/gin-gonic/gin"
)

// NewOGImageHandler serves the Open Graph card referenced by every page.
func NewOGImageHandler(r gin.IRoutes, card *ogimage.Cache) {
	r.GET("/opengraph-image", func(c *gin.Context) {
		data, err := card.PNG()
		if err != nil {
			c.Error(err)
			return
		}
		c.Header("Cache-Control", "public, max-age=86400, immutable")
		c.Data(http.StatusOK, ogimage.ContentType, data)
	})
}
