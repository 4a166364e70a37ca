package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// JSON writes the success envelope shared with the main API
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, utils.SuccessResponse{Success: true, Data: data})
}

// Message writes a success envelope carrying a message and optional data
func Message(c *gin.Context, status int, message string, data any) {
	c.JSON(status, utils.SuccessResponse{Success: true, Message: message, Data: data})
}

// Error writes the error envelope for err and aborts the chain
func Error(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal("Internal server error", err)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, utils.ErrorResponse{
		Success: false,
		Error: utils.ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}
