package web

import (
	"embed"
	"html/template"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the page templates. The result is handed to
// gin.Engine.SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// Link is one entry of the navigation or footer.
type Link struct {
	Path   string
	Label  string
	Active bool
}

// Option is a select, radio or checkbox choice.
type Option struct {
	Value   string
	Label   string
	Checked bool
}

// LanguageChoice is one entry of the language switcher.
type LanguageChoice struct {
	Code   domain.Language
	Label  string
	Active bool
}

// PageData is what every template receives.
type PageData struct {
	Tr        locale.Translator
	Lang      domain.Language
	Languages []LanguageChoice
	Nav       []Link
	Path      string
	Title     string
	SiteURL   string
	CSRFToken string
	Modules   []ModuleCard
	Contact   *ContactForm
}

// ModuleCard is a module presented on the home and solutions pages.
type ModuleCard struct {
	Title string
	Body  string
}

// ContactForm carries the form values, inline errors and the status banner.
type ContactForm struct {
	Fields      domain.ContactFields
	Errors      map[string]string
	Status      domain.SubmissionStatus
	RateLimited bool
	Brackets    []Option
	Modules     []Option
	Preferences []Option
}

// HasError reports whether field has an inline error.
func (f *ContactForm) HasError(field string) bool {
	_, ok := f.Errors[field]
	return ok
}

func newContactForm(tr locale.Translator, fields domain.ContactFields, errors map[string]string, status domain.SubmissionStatus) *ContactForm {
	selected := make(map[string]bool, len(fields.Modules))
	for _, m := range fields.Modules {
		selected[m] = true
	}

	form := &ContactForm{
		Fields: fields,
		Errors: errors,
		Status: status,
	}
	for _, b := range domain.EmployeeBrackets() {
		form.Brackets = append(form.Brackets, Option{
			Value:   string(b),
			Label:   string(b),
			Checked: fields.Employees == string(b),
		})
	}
	for _, m := range domain.ModuleCatalog() {
		form.Modules = append(form.Modules, Option{
			Value:   string(m),
			Label:   tr.Tk(locale.ModuleTitleKey(m)),
			Checked: selected[string(m)],
		})
	}
	for _, p := range domain.ContactPreferences() {
		form.Preferences = append(form.Preferences, Option{
			Value:   string(p),
			Label:   tr.Tk(locale.PreferenceKey(p)),
			Checked: fields.ContactPreference == string(p),
		})
	}
	return form
}

func moduleCards(tr locale.Translator) []ModuleCard {
	var cards []ModuleCard
	for _, m := range domain.ModuleCatalog() {
		body := locale.ModuleBodyKey(m)
		if body == "" {
			continue
		}
		cards = append(cards, ModuleCard{
			Title: tr.Tk(locale.ModuleTitleKey(m)),
			Body:  tr.Tk(body),
		})
	}
	return cards
}
