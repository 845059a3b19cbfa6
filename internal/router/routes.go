package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/auth"
	"github.com/tofind/freelead/internal/config"
	"github.com/tofind/freelead/internal/handler"
	middlewarepkg "github.com/tofind/freelead/internal/middleware"
	"github.com/tofind/freelead/internal/store"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Recommend *handler.RecommendHandler
	Contact   *handler.ContactHandler
	Contract  *handler.ContractHandler
	Billing   *handler.BillingHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, users store.UserStore, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	// Pricing detection and the Stripe webhook stay public; the webhook is
	// authenticated by its signature instead.
	e.GET("/api/detect-country", handlers.Billing.DetectCountry)
	e.POST("/api/webhook", handlers.Billing.Webhook)

	secured := e.Group("/api")
	secured.Use(middlewarepkg.JWT(jwtManager))

	searchLimit := middlewarepkg.FreeTierLimiter(cfg.RateLimitFree, users)
	secured.POST("/recommendations", handlers.Recommend.Recommend, searchLimit)
	secured.POST("/recommendations/next-batch", handlers.Recommend.NextBatch)

	secured.POST("/get-contact", handlers.Contact.GetContact)
	secured.POST("/contracts/generate", handlers.Contract.Generate)

	secured.POST("/create-checkout-session", handlers.Billing.CreateCheckout)
	secured.POST("/verify-payment", handlers.Billing.VerifyPayment)
	secured.POST("/check-payment-status", handlers.Billing.CheckStatus)
}
