package locale

import (
	"net/http"
	"time"

	"tracefield-site/internal/domain"
)

// LanguageCookieName stores the visitor's language choice.
const LanguageCookieName = "lang"

// PreferenceStore persists the active language across visits.
type PreferenceStore interface {
	Load(r *http.Request) (domain.Language, bool)
	Save(w http.ResponseWriter, lang domain.Language)
}

// CookiePreferenceStore keeps the language code in a long-lived cookie.
type CookiePreferenceStore struct {
	MaxAge time.Duration
	Secure bool
}

// NewCookiePreferenceStore remembers the choice for a year.
func NewCookiePreferenceStore(secure bool) *CookiePreferenceStore {
	return &CookiePreferenceStore{MaxAge: 365 * 24 * time.Hour, Secure: secure}
}

// Load returns the stored language, ignoring unknown or tampered values.
func (s *CookiePreferenceStore) Load(r *http.Request) (domain.Language, bool) {
	cookie, err := r.Cookie(LanguageCookieName)
	if err != nil {
		return "", false
	}
	return domain.ParseLanguage(cookie.Value)
}

func (s *CookiePreferenceStore) Save(w http.ResponseWriter, lang domain.Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int(s.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
