package domain

// Language is one of the languages the site is translated into.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
	LanguageThai    Language = "th"
)

// ReferenceLanguage is the language the catalog was authored in. Every
// other language falls back to it for missing keys.
const ReferenceLanguage = LanguageFrench

// SupportedLanguages returns the languages in switcher order, reference first.
func SupportedLanguages() []Language {
	return []Language{LanguageFrench, LanguageEnglish, LanguageThai}
}

// ParseLanguage accepts a supported language code.
func ParseLanguage(code string) (Language, bool) {
	for _, lang := range SupportedLanguages() {
		if string(lang) == code {
			return lang, true
		}
	}
	return "", false
}

// NativeName is the label shown in the language switcher.
func (l Language) NativeName() string {
	switch l {
	case LanguageFrench:
		return "Français"
	case LanguageEnglish:
		return "English"
	case LanguageThai:
		return "ไทย"
	default:
		return string(l)
	}
}
