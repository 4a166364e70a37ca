package handlers

import (
	"net/http"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// PricingHandler exposes the pricing calculator
type PricingHandler struct {
	calculator *pricing.Calculator
	logger     *logger.Logger
	validator  *validator.Validator
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(calc *pricing.Calculator, log *logger.Logger, val *validator.Validator) *PricingHandler {
	return &PricingHandler{calculator: calc, logger: log, validator: val}
}

// Table returns every cell of the pricing matrix
// @Summary Pricing table
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.PricingTable
// @Router /pricing [get]
func (h *PricingHandler) Table(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, dto.PricingTable{
		Currency: h.calculator.Currency(),
		Rows:     pricing.Matrix(),
	})
}

// Quote prices one selection
// @Summary Price a selection
// @Description Returns price, savings, referral discount and included perks
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Selection"
// @Success 200 {object} pricing.Quote
// @Failure 400 {object} utils.ErrorResponse
// @Router /pricing/quote [post]
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	q, err := h.calculator.Quote(req.ToDomain())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to price selection")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, q)
}

// FAQ returns the pricing questions and answers
// @Summary Pricing FAQ
// @Tags Pricing
// @Produce json
// @Success 200 {array} pricing.FAQEntry
// @Router /pricing/faq [get]
func (h *PricingHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, pricing.FAQ())
}
