package middleware

import (
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"

	"github.com/gin-gonic/gin"
)

// LanguageQueryParam switches language for a single link, e.g. /?lang=th.
const LanguageQueryParam = "lang"

var (
	languageKey   = string(domain.KeyLanguage)
	translatorKey = string(domain.KeyTranslator)
)

// Language resolves the active language for the request and stores it with
// its Translator in the context. Order: ?lang=, the stored preference,
// Accept-Language, then fallback. A valid ?lang= is persisted.
func Language(catalog *locale.Catalog, store locale.PreferenceStore, fallback domain.Language) gin.HandlerFunc {
	if _, ok := domain.ParseLanguage(string(fallback)); !ok {
		fallback = domain.ReferenceLanguage
	}

	return func(c *gin.Context) {
		lang, ok := domain.ParseLanguage(c.Query(LanguageQueryParam))
		if ok {
			store.Save(c.Writer, lang)
		} else if lang, ok = store.Load(c.Request); !ok {
			if header := c.GetHeader("Accept-Language"); header != "" {
				lang = catalog.Negotiate(header)
			} else {
				lang = fallback
			}
		}

		c.Set(languageKey, lang)
		c.Set(translatorKey, catalog.For(lang))
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

// TranslatorFrom returns the request's Translator. Outside the Language
// middleware it is the zero Translator, which echoes keys.
func TranslatorFrom(c *gin.Context) locale.Translator {
	v, _ := c.Get(translatorKey)
	tr, _ := v.(locale.Translator)
	return tr
}

// LanguageFrom returns the request's active language.
func LanguageFrom(c *gin.Context) domain.Language {
	v, _ := c.Get(languageKey)
	if lang, ok := v.(domain.Language); ok {
		return lang
	}
	return domain.ReferenceLanguage
}
