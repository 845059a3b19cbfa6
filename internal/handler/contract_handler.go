package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tofind/freelead/internal/contract"
	"github.com/tofind/freelead/internal/dto"
)

// ContractHandler renders service agreement drafts.
type ContractHandler struct {
	now func() time.Time
}

// NewContractHandler constructs a ContractHandler.
func NewContractHandler() *ContractHandler {
	return &ContractHandler{now: time.Now}
}

// Generate handles POST /api/contracts/generate requests.
func (h *ContractHandler) Generate(c echo.Context) error {
	var req dto.ContractRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Niche == "" {
		return Error(c, http.StatusBadRequest, "niche is required")
	}

	generated := contract.Generate(req.Niche, req.Experience, req.ContractType, h.now())

	return Success(c, http.StatusOK, "contract generated", dto.ContractResponse{
		Contract: generated.Text,
		Metadata: dto.ContractMetadata{
			Niche:        generated.Niche,
			Experience:   generated.Experience,
			ContractType: generated.ContractType,
			GeneratedAt:  generated.GeneratedAt,
		},
	})
}
