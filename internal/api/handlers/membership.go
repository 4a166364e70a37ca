package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// MembershipHandler serves the purchasable plans
type MembershipHandler struct {
	service membership.Service
	logger  *logger.Logger
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(service membership.Service, log *logger.Logger) *MembershipHandler {
	return &MembershipHandler{service: service, logger: log}
}

// List returns the purchasable plans
// @Summary List memberships
// @Tags Memberships
// @Produce json
// @Param type query string false "Filter by type (gym, studio, flex)"
// @Param active query bool false "Only active plans (default true)"
// @Success 200 {array} membership.Membership
// @Failure 400 {object} utils.ErrorResponse "Unknown type"
// @Router /memberships [get]
func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := membership.Filter{
		Type:       r.URL.Query().Get("type"),
		ActiveOnly: true,
	}
	if v := r.URL.Query().Get("active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filter.ActiveOnly = active
		}
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list memberships")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, items)
}

// Get returns one membership. Unknown IDs answer 404 with close matches in error.details.suggestions.
// @Summary Get membership
// @Tags Memberships
// @Produce json
// @Param id path string true "Membership ID"
// @Success 200 {object} membership.Membership
// @Failure 404 {object} utils.ErrorResponse "Membership not found"
// @Router /memberships/{id} [get]
func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load membership")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, m)
}
