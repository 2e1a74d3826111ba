package v1

import (
	"net/http"

	"tracefield-site/internal/delivery/http/response"
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type I18nHandler struct {
	catalog *locale.Catalog
}

// Translations is the flattened catalog of one language.
type Translations struct {
	Language domain.Language   `json:"language"`
	Messages map[string]string `json:"messages"`
	// Missing lists keys served from the reference language.
	Missing []string `json:"missing"`
}

func NewI18nHandler(public *gin.RouterGroup, catalog *locale.Catalog) {
	handler := &I18nHandler{catalog: catalog}
	public.GET("/i18n/:lang", handler.GetTranslations)
}

// GetTranslations godoc
// @Summary      Translations
// @Description  Every catalog key resolved for a language, reference fallbacks applied.
// @Tags         i18n
// @Produce      json
// @Param        lang  path      string  true  "Language code"  Enums(fr, en, th)
// @Success      200   {object}  response.Response{data=Translations}
// @Failure      404   {object}  response.Response
// @Router       /i18n/{lang} [get]
func (h *I18nHandler) GetTranslations(c *gin.Context) {
	lang, ok := domain.ParseLanguage(c.Param("lang"))
	if !ok {
		c.Error(apperror.NotFound("Unsupported language"))
		return
	}

	missing := h.catalog.Missing(lang)
	if missing == nil {
		missing = []string{}
	}

	c.Header("Cache-Control", "public, max-age=300")
	response.Success(c, http.StatusOK, "Translations retrieved", Translations{
		Language: lang,
		Messages: h.catalog.Values(lang),
		Missing:  missing,
	})
}
