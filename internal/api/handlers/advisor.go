package handlers

import (
	"net/http"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/domain/advisor"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// AdvisorHandler recommends a plan from training habits
type AdvisorHandler struct {
	service   advisor.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(service advisor.Service, log *logger.Logger, val *validator.Validator) *AdvisorHandler {
	return &AdvisorHandler{service: service, logger: log, validator: val}
}

// Recommend suggests a plan
// @Summary Recommend a plan
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body dto.AdvisorRequest true "Training habits"
// @Success 200 {object} advisor.Recommendation
// @Failure 400 {object} utils.ErrorResponse
// @Router /advisor/recommend [post]
func (h *AdvisorHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.AdvisorRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	rec, err := h.service.Recommend(r.Context(), req.ToDomain())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to build recommendation")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rec)
}
