package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracefield-site/config"
	_ "tracefield-site/docs" // Important for Swagger
	"tracefield-site/internal/delivery/http/middleware"
	v1 "tracefield-site/internal/delivery/http/v1"
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/logger"
	"tracefield-site/pkg/ogimage"
	"tracefield-site/pkg/redis"
	"tracefield-site/pkg/relay"
	"tracefield-site/pkg/security"
	"tracefield-site/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           TraceField Site API
// @version         1.0
// @description     Contact relay and translation endpoints of the TraceField marketing site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(logger.Options{Format: cfg.LogFormat, Release: cfg.IsRelease()})
	logger.Log.Info("Starting TraceField site", "port", cfg.Port)

	events := security.InitSecurityLogger(security.ServiceName, cfg.GinMode)
	defer func() { _ = events.Sync() }()

	// 3. Load Translations
	catalog, err := locale.LoadCatalog(locale.EmbeddedFS(), logger.Log)
	if err != nil {
		logger.Log.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}
	if err := catalog.Verify(); err != nil {
		logger.Log.Error("Translation catalog incomplete", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 4. Setup Redis (optional)
	memoryCounter := middleware.NewMemoryCounter()
	go memoryCounter.Run(ctx, 5*time.Minute)

	probes := map[string]usecase.HealthProbe{
		"catalog": func(context.Context) error { return catalog.Verify() },
	}
	deps := v1.RouterDeps{MemoryCounter: memoryCounter}

	redisClient, err := redis.Open(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case err == nil:
		defer redisClient.Close()
		deps.RateCounter = middleware.NewRedisCounter(redisClient)
		probes["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
		logger.Log.Info("Redis connected, rate limits are shared")
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, using in-memory rate limiting")
	default:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}

	// 5. Setup Relay
	relayClient := relay.NewClient(relay.Config{
		Endpoint:  cfg.Web3FormsURL,
		AccessKey: cfg.Web3FormsKey,
		Timeout:   cfg.RelayTimeout,
	}, nil)
	if !relayClient.IsConfigured() {
		logger.Log.Warn("Web3Forms access key not configured - contact submissions will fail")
	}
	probes["relay"] = func(context.Context) error {
		if !relayClient.IsConfigured() {
			return errors.New("web3forms access key not configured")
		}
		return nil
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(relayClient, validation.New(), relayClient.AccessKey(), logger.Log)
	board := usecase.NewStatusBoard(cfg.SuccessDisplay())
	go board.Run(ctx, time.Minute, time.Duration(cfg.VisitorIdleMinutes)*time.Minute)

	reference := catalog.For(domain.ReferenceLanguage)
	deps.ContactUC = contactUC
	deps.HealthUC = usecase.NewHealthUsecase(probes)
	deps.Board = board
	deps.Catalog = catalog
	deps.Preferences = locale.NewCookiePreferenceStore(cfg.SecureCookies())
	deps.OGImage = ogimage.NewCache(ogimage.Card{Title: "TraceField", Tagline: reference.Tk(locale.KeyMetaTagline)})
	deps.Config = cfg

	// 7. Setup Router
	router, err := v1.NewRouter(deps)
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	err = serve(srv, quit)
	stop()
	if err != nil {
		logger.Log.Error("Server stopped", "error", err)
		_ = events.Sync()
		os.Exit(1)
	}

	logger.Log.Info("Server exiting")
}

// serve runs srv until a signal arrives on quit or the listener fails, then
// shuts it down gracefully.
func serve(srv *http.Server, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case sig := <-quit:
		logger.Get().Info("Shutting down server...", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
