package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/discovery"
	"github.com/tofind/freelead/internal/dto"
)

// RecommendHandler exposes the business discovery endpoints.
type RecommendHandler struct {
	service *discovery.Service
}

// NewRecommendHandler constructs a RecommendHandler.
func NewRecommendHandler(service *discovery.Service) *RecommendHandler {
	return &RecommendHandler{service: service}
}

// Recommend handles POST /api/recommendations requests.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req dto.RecommendRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if req.Lat == 0 && req.Lon == 0 {
		return Error(c, http.StatusBadRequest, "lat and lon are required")
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		return Error(c, http.StatusBadRequest, "coordinates out of range")
	}

	resp, err := h.service.Recommend(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to search businesses")
	}

	return Success(c, http.StatusOK, "recommendations generated", resp)
}

// NextBatch handles POST /api/recommendations/next-batch requests. It pages
// through a batch the client already holds without re-running discovery.
func (h *RecommendHandler) NextBatch(c echo.Context) error {
	var req dto.NextBatchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if len(req.AllBusinesses) == 0 {
		return Error(c, http.StatusBadRequest, "allBusinesses is required")
	}
	if req.Offset < 0 {
		return Error(c, http.StatusBadRequest, "offset must not be negative")
	}

	page, hasMore, nextOffset := discovery.Paginate(req.AllBusinesses, req.Offset)

	return Success(c, http.StatusOK, "next batch", dto.RecommendResponse{
		Businesses: page,
		Metadata: dto.BatchMetadata{
			TotalFound:    len(req.AllBusinesses),
			HasMore:       hasMore,
			NextOffset:    nextOffset,
			CurrentOffset: req.Offset,
			Niche:         req.Niche,
		},
	})
}
