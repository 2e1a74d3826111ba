package locale

import (
	"tracefield-site/internal/domain"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	i18ntemplate "github.com/nicksnyder/go-i18n/v2/i18n/template"
)

// Translator resolves keys for one language. It is a small value: switching
// language means asking the catalog for a new Translator, never mutating one.
type Translator struct {
	lang      domain.Language
	localizer *i18n.Localizer
}

// For returns a Translator bound to lang. Unsupported values resolve
// against the reference language.
func (c *Catalog) For(lang domain.Language) Translator {
	if _, ok := domain.ParseLanguage(string(lang)); !ok {
		lang = domain.ReferenceLanguage
	}
	return Translator{
		lang:      lang,
		localizer: i18n.NewLocalizer(c.bundle, string(lang)),
	}
}

// Language is the language this Translator resolves for.
func (t Translator) Language() domain.Language {
	return t.lang
}

// T resolves a dotted key path. Lookup order is the bound language, then
// the reference language, then the key itself, so a missing translation
// shows up on the page instead of breaking it.
func (t Translator) T(key string) string {
	if key == "" || t.localizer == nil {
		return key
	}
	text, _ := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      key,
		DefaultMessage: &i18n.Message{ID: key, Other: key},
		// Copy is plain text; braces in it are not template actions.
		TemplateParser: i18ntemplate.IdentityParser{},
	})
	if text == "" {
		return key
	}
	return text
}

// Tk is T for the typed keys the site renders.
func (t Translator) Tk(key Key) string {
	return t.T(string(key))
}
