package settings

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

const userIDKey = "userID"

// RequireAuth accepts the same access tokens the main API issues, from the
// Authorization header or the access cookie
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			token = strings.TrimSpace(h[7:])
		} else if cookie, err := c.Cookie(middleware.AccessCookie); err == nil {
			token = cookie
		}
		if token == "" {
			Error(c, errors.Unauthorized("Authentication required"))
			return
		}

		claims, err := auth.ParseAccess(token, secret)
		if err != nil {
			Error(c, errors.Unauthorized("Invalid or expired token"))
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
