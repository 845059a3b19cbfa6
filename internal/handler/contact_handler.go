package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/discovery"
	"github.com/tofind/freelead/internal/dto"
	"github.com/tofind/freelead/internal/entity"
	"github.com/tofind/freelead/internal/middleware"
	"github.com/tofind/freelead/internal/store"
)

// ContactHandler serves on-demand contact enrichment, metered by a daily
// per-user quota.
type ContactHandler struct {
	enricher   discovery.ContactEnricher
	users      store.UserStore
	dailyQuota int
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(enricher discovery.ContactEnricher, users store.UserStore, dailyQuota int) *ContactHandler {
	return &ContactHandler{enricher: enricher, users: users, dailyQuota: dailyQuota}
}

// GetContact handles POST /api/get-contact requests.
func (h *ContactHandler) GetContact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.BusinessName = strings.TrimSpace(req.BusinessName)
	if req.BusinessName == "" {
		return Error(c, http.StatusBadRequest, "businessName is required")
	}

	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)
	if email == "" {
		return Error(c, http.StatusUnauthorized, "missing authenticated user")
	}

	remaining, err := h.users.ConsumeQuota(c.Request().Context(), email, h.dailyQuota)
	if err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			return Error(c, http.StatusTooManyRequests, "daily contact quota exceeded")
		}
		return Error(c, http.StatusInternalServerError, "unable to check quota")
	}

	profile := h.enricher.EnrichContact(c.Request().Context(), entity.BusinessQuery{
		Name:    req.BusinessName,
		Website: req.BusinessWebsite,
		City:    req.City,
	})

	return Success(c, http.StatusOK, "contact retrieved", dto.ContactResponse{
		Contact: profile,
		DailyLimit: dto.DailyLimit{
			Remaining: remaining,
			Used:      h.dailyQuota - remaining,
			Total:     h.dailyQuota,
		},
	})
}
