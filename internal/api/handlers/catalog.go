package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/domain/catalog"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// CatalogHandler serves the gym and studio offerings
type CatalogHandler struct {
	service catalog.Service
	logger  *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service catalog.Service, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: log}
}

// Gym returns the gym floor offerings
// @Summary Gym offerings
// @Description Equipment zones, featured classes and access methods
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.GymOfferings
// @Router /catalog/gym [get]
func (h *CatalogHandler) Gym(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.service.Gym(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load gym offerings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, offerings)
}

// Studio returns the studio offerings
// @Summary Studio offerings
// @Description Studio disciplines, services and the weekly timetable
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.StudioOfferings
// @Router /catalog/studio [get]
func (h *CatalogHandler) Studio(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.service.Studio(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load studio offerings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, offerings)
}

// StudioType returns one studio discipline
// @Summary Studio discipline
// @Tags Catalog
// @Produce json
// @Param id path string true "Studio type (yoga, pilates, s60)"
// @Success 200 {object} catalog.StudioType
// @Failure 404 {object} utils.ErrorResponse
// @Router /catalog/studio/{id} [get]
func (h *CatalogHandler) StudioType(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.StudioType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load studio type")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, st)
}
