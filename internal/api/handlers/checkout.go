package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/domain/checkout"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// checkoutTimeout covers the simulated gateway delay with room to spare
const checkoutTimeout = 30 * time.Second

// CheckoutHandler runs purchases and upgrades
type CheckoutHandler struct {
	service   checkout.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service checkout.Service, log *logger.Logger, val *validator.Validator) *CheckoutHandler {
	return &CheckoutHandler{service: service, logger: log, validator: val}
}

// Checkout buys a membership
// @Summary Checkout
// @Description Charges the simulated gateway and issues an ACTIVE subscription. Declines answer 402.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Purchase"
// @Success 201 {object} checkout.Result
// @Failure 400 {object} utils.ErrorResponse "Invalid request or payment details"
// @Failure 402 {object} utils.ErrorResponse "Payment declined"
// @Failure 502 {object} utils.ErrorResponse "Gateway unavailable"
// @Security BearerAuth
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkoutTimeout)
	defer cancel()

	result, err := h.service.Checkout(ctx, userID, req.ToDomain())
	if err != nil {
		writeServiceError(w, h.logger, err, "Checkout failed")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Payment successful", result)
}

// Upgrade replaces an open subscription with a new plan, crediting its unused value
// @Summary Upgrade subscription
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.CheckoutRequest true "New plan and payment"
// @Success 201 {object} checkout.Result
// @Failure 402 {object} utils.ErrorResponse "Payment declined"
// @Failure 409 {object} utils.ErrorResponse "Subscription cannot be upgraded"
// @Security BearerAuth
// @Router /subscriptions/{id}/upgrade [post]
func (h *CheckoutHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkoutTimeout)
	defer cancel()

	result, err := h.service.Upgrade(ctx, userID, chi.URLParam(r, "id"), req.ToDomain())
	if err != nil {
		writeServiceError(w, h.logger, err, "Upgrade failed")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Subscription upgraded", result)
}
