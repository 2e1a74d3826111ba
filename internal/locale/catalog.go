package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"tracefield-site/internal/domain"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var embedded embed.FS

// EmbeddedFS returns the translation files compiled into the binary, one
// "<code>.toml" per language at the root.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "translations")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Catalog holds every language's translations. It is built once and never
// mutated, so it is safe to share between requests.
type Catalog struct {
	bundle   *i18n.Bundle
	matcher  language.Matcher
	messages map[domain.Language]map[string]string
	keys     []string
}

// LoadCatalog reads "<code>.toml" for every supported language from fsys.
// The reference language file is mandatory; other languages may be absent
// or incomplete and then fall back to the reference values.
func LoadCatalog(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bundle := i18n.NewBundle(languageTag(domain.ReferenceLanguage))
	c := &Catalog{
		bundle:   bundle,
		messages: make(map[domain.Language]map[string]string, len(domain.SupportedLanguages())),
	}

	tags := make([]language.Tag, 0, len(domain.SupportedLanguages()))
	for _, lang := range domain.SupportedLanguages() {
		tags = append(tags, languageTag(lang))

		flat, err := readLanguageFile(fsys, lang)
		if err != nil {
			if lang == domain.ReferenceLanguage {
				return nil, fmt.Errorf("load reference catalog %q: %w", lang, err)
			}
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Translation file missing, falling back to reference language", "language", lang)
				c.messages[lang] = map[string]string{}
				continue
			}
			return nil, fmt.Errorf("load catalog %q: %w", lang, err)
		}

		msgs := make([]*i18n.Message, 0, len(flat))
		for id, text := range flat {
			msgs = append(msgs, &i18n.Message{ID: id, Other: text})
		}
		if err := bundle.AddMessages(languageTag(lang), msgs...); err != nil {
			return nil, fmt.Errorf("register catalog %q: %w", lang, err)
		}
		c.messages[lang] = flat
	}
	c.matcher = language.NewMatcher(tags)

	for id := range c.messages[domain.ReferenceLanguage] {
		c.keys = append(c.keys, id)
	}
	sort.Strings(c.keys)

	for _, lang := range domain.SupportedLanguages() {
		if missing := c.Missing(lang); len(missing) > 0 {
			logger.Warn("Translation catalog incomplete", "language", lang, "missing", len(missing), "first_missing", missing[0])
		}
	}

	return c, nil
}

func readLanguageFile(fsys fs.FS, lang domain.Language) (map[string]string, error) {
	data, err := fs.ReadFile(fsys, string(lang)+".toml")
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s.toml: %w", lang, err)
	}

	flat := make(map[string]string)
	if err := flatten("", raw, flat); err != nil {
		return nil, fmt.Errorf("%s.toml: %w", lang, err)
	}
	return flat, nil
}

// flatten turns nested tables into dotted keys: [home.hero] title -> home.hero.title.
func flatten(prefix string, node map[string]interface{}, out map[string]string) error {
	for name, value := range node {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		switch v := value.(type) {
		case string:
			out[path] = v
		case map[string]interface{}:
			if err := flatten(path, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected a string or a table, got %T", path, value)
		}
	}
	return nil
}

func languageTag(lang domain.Language) language.Tag {
	return language.Make(string(lang))
}

// Keys returns the sorted key paths of the reference language.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Has reports whether lang defines key itself, without fallback.
func (c *Catalog) Has(lang domain.Language, key string) bool {
	_, ok := c.messages[lang][key]
	return ok
}

// Missing lists the reference keys that lang does not define.
func (c *Catalog) Missing(lang domain.Language) []string {
	var missing []string
	for _, key := range c.keys {
		if !c.Has(lang, key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Verify checks that every Key used by the site exists in the reference
// language.
func (c *Catalog) Verify() error {
	var absent []string
	for _, key := range AllKeys() {
		if !c.Has(domain.ReferenceLanguage, string(key)) {
			absent = append(absent, string(key))
		}
	}
	if len(absent) > 0 {
		return fmt.Errorf("reference catalog %q lacks %d keys: %s",
			domain.ReferenceLanguage, len(absent), strings.Join(absent, ", "))
	}
	return nil
}

// Values returns every reference key resolved for lang, fallbacks applied.
func (c *Catalog) Values(lang domain.Language) map[string]string {
	t := c.For(lang)
	out := make(map[string]string, len(c.keys))
	for _, key := range c.keys {
		out[key] = t.T(key)
	}
	return out
}

// Negotiate picks the best supported language for an Accept-Language
// header value, defaulting to the reference language.
func (c *Catalog) Negotiate(acceptLanguage string) domain.Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return domain.ReferenceLanguage
	}
	tag, _ := language.MatchStrings(c.matcher, acceptLanguage)
	base, _ := tag.Base()
	if lang, ok := domain.ParseLanguage(base.String()); ok {
		return lang
	}
	return domain.ReferenceLanguage
}
