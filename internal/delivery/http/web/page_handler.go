package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"tracefield-site/internal/delivery/http/middleware"
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/logger"
	"tracefield-site/pkg/security"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	contactUC domain.ContactUsecase
	board     *usecase.StatusBoard
	store     locale.PreferenceStore
	siteURL   string
}

// PageDeps groups what the page routes need.
type PageDeps struct {
	ContactUC domain.ContactUsecase
	Board     *usecase.StatusBoard
	Store     locale.PreferenceStore
	SiteURL   string
	// ContactLimit builds the submission rate limit; limited writes the
	// refusal.
	ContactLimit func(limited gin.HandlerFunc) gin.HandlerFunc
}

// page is a static page: its route, template and title key.
type page struct {
	path     string
	template string
	title    locale.Key
	nav      locale.Key
}

var pages = []page{
	{path: "/", template: "home.html", title: locale.KeyMetaTitle, nav: locale.KeyNavHome},
	{path: "/a-propos", template: "about.html", title: locale.KeyAboutTitle, nav: locale.KeyNavAbout},
	{path: "/solutions", template: "solutions.html", title: locale.KeySolutionsTitle, nav: locale.KeyNavSolutions},
	{path: "/contact", template: "contact.html", title: locale.KeyContactTitle, nav: locale.KeyNavContact},
	{path: "/terms", template: "terms.html", title: locale.KeyTermsTitle},
	{path: "/privacy", template: "privacy.html", title: locale.KeyPrivacyTitle},
}

// NewPageHandler registers the HTML pages, the contact form and the
// language switch.
func NewPageHandler(r gin.IRoutes, deps PageDeps) {
	handler := &PageHandler{
		contactUC: deps.ContactUC,
		board:     deps.Board,
		store:     deps.Store,
		siteURL:   deps.SiteURL,
	}
	limit := func(c *gin.Context) { c.Next() }
	if deps.ContactLimit != nil {
		limit = deps.ContactLimit(handler.ContactRateLimited)
	}

	for _, p := range pages {
		p := p
		r.GET(p.path, func(c *gin.Context) { handler.render(c, http.StatusOK, p, nil) })
	}
	r.POST("/contact", limit, handler.SubmitContact)
	r.POST("/language", handler.SetLanguage)
	r.GET("/language/:code", handler.SetLanguage)
}

func pageFor(path string) page {
	for _, p := range pages {
		if p.path == path {
			return p
		}
	}
	return pages[0]
}

func (h *PageHandler) pageData(c *gin.Context, p page) PageData {
	tr := middleware.TranslatorFrom(c)
	lang := tr.Language()

	data := PageData{
		Tr:        tr,
		Lang:      lang,
		Path:      p.path,
		Title:     tr.Tk(p.title),
		SiteURL:   h.siteURL,
		CSRFToken: middleware.CSRFTokenFrom(c),
	}
	if p.title != locale.KeyMetaTitle {
		data.Title += " | TraceField"
	}
	for _, l := range domain.SupportedLanguages() {
		data.Languages = append(data.Languages, LanguageChoice{Code: l, Label: l.NativeName(), Active: l == lang})
	}
	for _, np := range pages {
		if np.nav == "" {
			continue
		}
		data.Nav = append(data.Nav, Link{Path: np.path, Label: tr.Tk(np.nav), Active: np.path == p.path})
	}
	if p.template == "home.html" || p.template == "solutions.html" {
		data.Modules = moduleCards(tr)
	}
	return data
}

func (h *PageHandler) render(c *gin.Context, code int, p page, form *ContactForm) {
	data := h.pageData(c, p)
	if p.template == "contact.html" {
		if form == nil {
			status := h.board.Status(middleware.VisitorFrom(c))
			form = newContactForm(data.Tr, domain.ContactFields{}, nil, status)
		}
		data.Contact = form
	}
	c.HTML(code, p.template, data)
}

// SubmitContact handles the server rendered contact form. Invalid input is
// re-rendered with inline errors and nothing is sent.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	tr := middleware.TranslatorFrom(c)
	contactPage := pageFor("/contact")

	var fields domain.ContactFields
	if err := c.ShouldBind(&fields); err != nil {
		form := newContactForm(tr, fields, nil, domain.StatusError)
		h.render(c, http.StatusBadRequest, contactPage, form)
		return
	}

	inquiry, err := h.contactUC.Validate(fields)
	if err != nil {
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			logger.Get().ErrorContext(c.Request.Context(), "Contact validation failed unexpectedly", "error", err)
			h.render(c, http.StatusInternalServerError, contactPage, newContactForm(tr, fields, nil, domain.StatusError))
			return
		}

		messages := make(map[string]string, len(verrs))
		names := make([]string, 0, len(verrs))
		for field, kind := range verrs {
			messages[field] = tr.Tk(locale.FieldErrorKey(field, kind))
			names = append(names, field)
		}
		security.DefaultLogger().LogValidationFailed(c.Request.Context(), c.ClientIP(), c.GetString(string(domain.KeyRequestID)), names)

		status := h.board.Status(middleware.VisitorFrom(c))
		h.render(c, http.StatusBadRequest, contactPage, newContactForm(tr, fields, messages, status))
		return
	}

	// The relay call outlives a visitor who navigates away; only the status
	// update is dropped then.
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, status, err := h.board.Submit(ctx, h.contactUC, middleware.VisitorFrom(c), inquiry)
	if errors.Is(err, usecase.ErrSubmissionPending) {
		h.render(c, http.StatusConflict, contactPage, newContactForm(tr, fields, nil, domain.StatusPending))
		return
	}

	if outcome.Succeeded() {
		// Clear the form once the relay accepted it.
		h.render(c, http.StatusOK, contactPage, newContactForm(tr, domain.ContactFields{}, nil, status))
		return
	}
	h.render(c, http.StatusBadGateway, contactPage, newContactForm(tr, fields, nil, domain.StatusError))
}

// ContactRateLimited renders the contact page for a throttled form post,
// keeping what the visitor typed.
func (h *PageHandler) ContactRateLimited(c *gin.Context) {
	var fields domain.ContactFields
	_ = c.ShouldBind(&fields)

	form := newContactForm(middleware.TranslatorFrom(c), fields, nil, domain.StatusError)
	form.RateLimited = true
	h.render(c, http.StatusTooManyRequests, pageFor("/contact"), form)
}

// SetLanguage persists the chosen language and sends the visitor back to
// the page they were on. Unsupported codes are refused and change nothing.
func (h *PageHandler) SetLanguage(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		code = c.PostForm("lang")
	}

	lang, ok := domain.ParseLanguage(code)
	if !ok {
		c.String(http.StatusBadRequest, "unsupported language %q", code)
		return
	}
	h.store.Save(c.Writer, lang)

	c.Redirect(http.StatusSeeOther, h.redirectTarget(c))
}

// redirectTarget only allows local paths so the switch cannot be used as
// an open redirect.
func (h *PageHandler) redirectTarget(c *gin.Context) string {
	candidates := []string{c.PostForm("redirect"), c.Query("redirect")}
	if ref := c.GetHeader("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request.Host) {
			candidates = append(candidates, u.Path)
		}
	}
	for _, target := range candidates {
		if isLocalPath(target) {
			return target
		}
	}
	return "/"
}

func isLocalPath(p string) bool {
	if p == "" || p[0] != '/' || len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
