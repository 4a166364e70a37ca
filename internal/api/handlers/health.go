package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sql.DB and the repository DB wrapper
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db     Pinger
	redis  *redis.Client
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler; redis may be nil
func NewHealthHandler(db Pinger, rdb *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  rdb,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check the database and, when enabled, the cache
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database connection failed")
		return
	}

	status := map[string]string{
		"status":   "ready",
		"database": "connected",
		"cache":    "disabled",
	}

	// the cache is optional, so a redis outage degrades instead of failing readiness
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.WithError(err).Warn("Redis ping failed")
			status["cache"] = "unavailable"
		} else {
			status["cache"] = "connected"
		}
	}

	utils.WriteSuccess(w, http.StatusOK, status)
}
