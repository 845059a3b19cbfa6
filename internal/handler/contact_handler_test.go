package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/middleware"
	"github.com/tofind/freelead/internal/store"
)

func TestContactHandler_GetContact(t *testing.T) {
	e := echo.New()

	t.Run("missing business name", func(t *testing.T) {
		handler := NewContactHandler(stubEnricher{}, &stubUserStore{}, 200)
		c, rec := postJSON(e, "/api/get-contact", `{}`)
		c.Set(middleware.ContextKeyUserEmail, "john@example.com")
		_ = handler.GetContact(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler := NewContactHandler(stubEnricher{}, &stubUserStore{}, 200)
		c, rec := postJSON(e, "/api/get-contact", `{"businessName":"Padaria Silva"}`)
		_ = handler.GetContact(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("quota exceeded", func(t *testing.T) {
		users := &stubUserStore{
			consumeQuota: func(ctx context.Context, email string, limit int) (int, error) {
				return 0, store.ErrQuotaExceeded
			},
		}
		handler := NewContactHandler(stubEnricher{}, users, 200)
		c, rec := postJSON(e, "/api/get-contact", `{"businessName":"Padaria Silva"}`)
		c.Set(middleware.ContextKeyUserEmail, "john@example.com")
		_ = handler.GetContact(c)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
	})

	t.Run("returns profile and remaining quota", func(t *testing.T) {
		users := &stubUserStore{
			consumeQuota: func(ctx context.Context, email string, limit int) (int, error) {
				if email != "john@example.com" || limit != 200 {
					t.Errorf("unexpected quota call %s limit=%d", email, limit)
				}
				return 199, nil
			},
		}
		handler := NewContactHandler(stubEnricher{}, users, 200)
		c, rec := postJSON(e, "/api/get-contact", `{"businessName":"Padaria Silva","city":"São Paulo"}`)
		c.Set(middleware.ContextKeyUserEmail, "john@example.com")
		if err := handler.GetContact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body struct {
			Data struct {
				Contact struct {
					Email string `json:"email"`
				} `json:"contact"`
				DailyLimit struct {
					Remaining int `json:"remaining"`
					Used      int `json:"used"`
					Total     int `json:"total"`
				} `json:"dailyLimit"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Data.Contact.Email == "" {
			t.Fatalf("expected enriched contact in response")
		}
		if body.Data.DailyLimit.Remaining != 199 || body.Data.DailyLimit.Used != 1 || body.Data.DailyLimit.Total != 200 {
			t.Fatalf("unexpected daily limit %+v", body.Data.DailyLimit)
		}
	})
}
