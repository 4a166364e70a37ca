package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// SubscriptionHandler serves the member's subscriptions and dashboard
type SubscriptionHandler struct {
	service subscription.Service
	logger  *logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(service subscription.Service, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, logger: log}
}

// List returns the member's subscriptions, newest first
// @Summary List subscriptions
// @Tags Subscriptions
// @Produce json
// @Success 200 {array} subscription.Subscription
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	subs, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list subscriptions")
		return
	}
	if subs == nil {
		subs = []*subscription.Subscription{}
	}
	utils.WriteSuccess(w, http.StatusOK, subs)
}

// Get returns one subscription
// @Summary Get subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Failed to load subscription", "", h.service.Get)
}

// Pause pauses an active subscription
// @Summary Pause subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 409 {object} utils.ErrorResponse "Not active or no pause allowance left"
// @Security BearerAuth
// @Router /subscriptions/{id}/pause [post]
func (h *SubscriptionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Failed to pause subscription", "Subscription paused", h.service.Pause)
}

// Resume resumes a paused subscription, extending its end date
// @Summary Resume subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 409 {object} utils.ErrorResponse "Not paused"
// @Security BearerAuth
// @Router /subscriptions/{id}/resume [post]
func (h *SubscriptionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Failed to resume subscription", "Subscription resumed", h.service.Resume)
}

// Cancel cancels an active or paused subscription
// @Summary Cancel subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 409 {object} utils.ErrorResponse "Already closed"
// @Security BearerAuth
// @Router /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Failed to cancel subscription", "Subscription cancelled", h.service.Cancel)
}

// UseGuestPass consumes one guest pass
// @Summary Use a guest pass
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 409 {object} utils.ErrorResponse "No guest passes left"
// @Security BearerAuth
// @Router /subscriptions/{id}/guest-pass [post]
func (h *SubscriptionHandler) UseGuestPass(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Failed to use guest pass", "Guest pass used", h.service.UseGuestPass)
}

// Dashboard returns the member overview
// @Summary Member dashboard
// @Description Active count, guest passes, next end date and subscriptions with their memberships
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} subscription.Dashboard
// @Security BearerAuth
// @Router /dashboard [get]
func (h *SubscriptionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load dashboard")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, d)
}

type subscriptionAction func(ctx context.Context, userID int64, id string) (*subscription.Subscription, error)

func (h *SubscriptionHandler) apply(w http.ResponseWriter, r *http.Request, failMsg, okMsg string, action subscriptionAction) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sub, err := action(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, failMsg)
		return
	}
	if okMsg == "" {
		utils.WriteSuccess(w, http.StatusOK, sub)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, okMsg, sub)
}
