package dto

import "github.com/tofind/freelead/internal/entity"

// ContactRequest asks for the contact profile of a single business,
// consuming one unit of the caller's daily quota.
type ContactRequest struct {
	BusinessName    string `json:"businessName"`
	BusinessWebsite string `json:"businessWebsite,omitempty"`
	City            string `json:"city,omitempty"`
}

// DailyLimit reports quota consumption for the current day.
type DailyLimit struct {
	Remaining int `json:"remaining"`
	Used      int `json:"used"`
	Total     int `json:"total"`
}

// ContactResponse carries the enriched contact profile and remaining quota.
type ContactResponse struct {
	Contact    entity.ContactProfile `json:"contact"`
	DailyLimit DailyLimit            `json:"dailyLimit"`
}
