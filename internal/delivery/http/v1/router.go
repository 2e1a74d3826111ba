package v1

import (
	"fmt"
	"time"

	"tracefield-site/config"
	"tracefield-site/internal/delivery/http/middleware"
	"tracefield-site/internal/delivery/http/web"
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/ogimage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	Board       *usecase.StatusBoard
	Catalog     *locale.Catalog
	Preferences locale.PreferenceStore
	OGImage     *ogimage.Cache
	// RateCounter is nil when Redis is not configured.
	RateCounter middleware.Counter
	// MemoryCounter is the rate limit fallback.
	MemoryCounter *middleware.MemoryCounter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	secure := cfg.SecureCookies()
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	contactLimitConfig := middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window)
	contactLimit := middleware.RateLimitMiddleware(contactLimitConfig, deps.RateCounter, deps.MemoryCounter)
	formLimit := func(limited gin.HandlerFunc) gin.HandlerFunc {
		formConfig := contactLimitConfig
		formConfig.OnLimited = limited
		return middleware.RateLimitMiddleware(formConfig, deps.RateCounter, deps.MemoryCounter)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins, cfg.IsRelease())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(secure))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window),
		deps.RateCounter, deps.MemoryCounter,
	))
	r.Use(middleware.Language(deps.Catalog, deps.Preferences, domain.Language(cfg.DefaultLanguage)))
	r.Use(middleware.Visitor(secure))
	r.Use(middleware.CSRFMiddleware(secure))

	// Pages
	web.NewPageHandler(r, web.PageDeps{
		ContactUC:    deps.ContactUC,
		Board:        deps.Board,
		Store:        deps.Preferences,
		SiteURL:      cfg.SiteURL,
		ContactLimit: formLimit,
	})
	web.NewOGImageHandler(r, deps.OGImage)

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC, deps.Board, contactLimit)
	NewI18nHandler(v1, deps.Catalog)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}
