package settings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/net2mulu/signature-gym/internal/pkg/logger"
)

// NewEngine builds the settings router. All member routes require an access token.
func NewEngine(ctl *Controller, jwtSecret string, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(ctl.logger))

	r.GET("/health", func(c *gin.Context) {
		JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterSettingsRoutes(r.Group("/", RequireAuth(jwtSecret)), ctl)
	return r
}

// RegisterSettingsRoutes mounts the settings endpoints on g
func RegisterSettingsRoutes(g *gin.RouterGroup, ctl *Controller) {
	// Profile
	g.GET("/profile", ctl.GetProfile)
	g.PUT("/profile", ctl.UpdateProfile)

	// Account
	g.POST("/account/password", ctl.ChangePassword)

	// Notifications
	g.GET("/notifications/settings", ctl.GetNotificationSettings)
	g.PUT("/notifications/settings", ctl.UpdateNotificationSettings)
}

// requestLogger logs each request through the service logger instead of gin's default writer
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request completed")
		}
	}
}
