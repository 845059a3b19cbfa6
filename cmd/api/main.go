package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/tofind/freelead/internal/auth"
	"github.com/tofind/freelead/internal/billing"
	"github.com/tofind/freelead/internal/cache"
	"github.com/tofind/freelead/internal/config"
	"github.com/tofind/freelead/internal/database"
	"github.com/tofind/freelead/internal/discovery"
	"github.com/tofind/freelead/internal/enrich"
	"github.com/tofind/freelead/internal/handler"
	middlewarepkg "github.com/tofind/freelead/internal/middleware"
	"github.com/tofind/freelead/internal/pitch"
	"github.com/tofind/freelead/internal/router"
	"github.com/tofind/freelead/internal/service"
	"github.com/tofind/freelead/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var users store.UserStore
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()
		users = store.NewPGXUserStore(pool)
	} else {
		fileStore, err := store.NewFileStore(cfg.UsersFile)
		if err != nil {
			log.Fatalf("failed to open user store: %v", err)
		}
		users = fileStore
		log.Printf("using file-backed user store at %s", cfg.UsersFile)
	}

	var profileCache discovery.ProfileCache
	if cfg.RedisAddr != "" {
		redisCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable, enrichment cache disabled: %v", err)
		} else {
			profileCache = redisCache
			defer redisCache.Close()
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	enricher := enrich.NewEnricher(nil)
	overpass := discovery.NewOverpassClient(nil, cfg.OverpassURL)
	pitchWriter := pitch.NewWriter(cfg.GroqAPIKey, nil)
	discoveryService := discovery.NewService(overpass, enricher, pitchWriter, profileCache)

	payments := billing.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL)
	geo := billing.NewGeoDetector(nil)

	authService := service.NewAuthService(users, jwtManager)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Recommend: handler.NewRecommendHandler(discoveryService),
		Contact:   handler.NewContactHandler(enricher, users, cfg.DailyContactQuota),
		Contract:  handler.NewContractHandler(),
		Billing:   handler.NewBillingHandler(payments, geo, users),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	router.Register(e, cfg, jwtManager, users, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Printf("listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
