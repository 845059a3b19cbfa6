package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/billing"
	"github.com/tofind/freelead/internal/dto"
	"github.com/tofind/freelead/internal/middleware"
	"github.com/tofind/freelead/internal/store"
)

// PaymentProvider is the slice of the Stripe client the handler needs.
type PaymentProvider interface {
	CreateCheckout(email, country string) (*billing.CheckoutSession, error)
	VerifyPayment(sessionID string) (*billing.Entitlement, error)
	HandleWebhook(payload []byte, signature string) (*billing.Entitlement, error)
}

// GeoLocator resolves the caller's country for regional pricing.
type GeoLocator interface {
	DetectCountry(ctx context.Context, ip string) string
}

// BillingHandler exposes subscription and pricing endpoints.
type BillingHandler struct {
	payments PaymentProvider
	geo      GeoLocator
	users    store.UserStore
}

// NewBillingHandler constructs a BillingHandler.
func NewBillingHandler(payments PaymentProvider, geo GeoLocator, users store.UserStore) *BillingHandler {
	return &BillingHandler{payments: payments, geo: geo, users: users}
}

// CreateCheckout handles POST /api/create-checkout-session requests.
func (h *BillingHandler) CreateCheckout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)
	if email == "" {
		email = strings.TrimSpace(req.Email)
	}
	if email == "" {
		return Error(c, http.StatusBadRequest, "email is required")
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = h.geo.DetectCountry(c.Request().Context(), c.RealIP())
	}

	session, err := h.payments.CreateCheckout(email, country)
	if err != nil {
		if errors.Is(err, billing.ErrUnsupportedCountry) {
			return Error(c, http.StatusBadRequest, "unsupported country")
		}
		return Error(c, http.StatusInternalServerError, "unable to start checkout")
	}

	return Success(c, http.StatusOK, "checkout created", dto.CheckoutResponse{
		URL:     session.URL,
		Pricing: session.Pricing,
	})
}

// VerifyPayment handles POST /api/verify-payment requests.
func (h *BillingHandler) VerifyPayment(c echo.Context) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if req.SessionID == "" {
		return Error(c, http.StatusBadRequest, "sessionId is required")
	}

	entitlement, err := h.payments.VerifyPayment(req.SessionID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to verify payment")
	}
	if entitlement == nil {
		return Success(c, http.StatusOK, "payment pending", dto.StatusResponse{IsPaid: false})
	}

	if err := h.applyEntitlement(c.Request().Context(), entitlement); err != nil {
		return Error(c, http.StatusInternalServerError, "unable to update subscription")
	}

	return Success(c, http.StatusOK, "payment verified", dto.StatusResponse{
		IsPaid:   true,
		Country:  entitlement.Country,
		PlanType: entitlement.PlanType,
	})
}

// CheckStatus handles POST /api/check-payment-status requests.
func (h *BillingHandler) CheckStatus(c echo.Context) error {
	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)
	if email == "" {
		var req dto.StatusRequest
		if err := c.Bind(&req); err != nil {
			return Error(c, http.StatusBadRequest, "invalid payload")
		}
		email = strings.TrimSpace(req.Email)
	}
	if email == "" {
		return Error(c, http.StatusBadRequest, "email is required")
	}

	user, err := h.users.FindByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return Success(c, http.StatusOK, "status", dto.StatusResponse{IsPaid: false})
		}
		return Error(c, http.StatusInternalServerError, "unable to check status")
	}

	return Success(c, http.StatusOK, "status", dto.StatusResponse{
		IsPaid:   user.Premium,
		Country:  user.Country,
		PlanType: user.PlanType,
	})
}

// DetectCountry handles GET /api/detect-country requests.
func (h *BillingHandler) DetectCountry(c echo.Context) error {
	country := h.geo.DetectCountry(c.Request().Context(), c.RealIP())
	price, ok := billing.PriceFor(country)
	if !ok {
		country = billing.DefaultCountry
		price, _ = billing.PriceFor(country)
	}

	return Success(c, http.StatusOK, "country detected", dto.CountryResponse{
		Country: country,
		Pricing: dto.PricingInfo{
			Amount:   price.DisplayPrice,
			Currency: price.Currency,
			PriceID:  price.PriceID,
		},
	})
}

// Webhook handles POST /api/webhook requests from Stripe. The signature is
// verified before any state change is applied.
func (h *BillingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to read body")
	}

	entitlement, err := h.payments.HandleWebhook(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid webhook")
	}
	if entitlement == nil {
		return c.JSON(http.StatusOK, map[string]bool{"received": true})
	}

	if err := h.applyEntitlement(c.Request().Context(), entitlement); err != nil {
		return Error(c, http.StatusInternalServerError, "unable to update subscription")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (h *BillingHandler) applyEntitlement(ctx context.Context, e *billing.Entitlement) error {
	if e.Email == "" {
		return errors.New("entitlement without email")
	}
	return h.users.SetPremium(ctx, e.Email, e.Premium, e.CustomerID, e.Country, e.PlanType)
}
