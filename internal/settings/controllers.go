package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// Controller serves a member's account settings
type Controller struct {
	users     user.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewController creates a settings controller
func NewController(users user.Service, log *logger.Logger, val *validator.Validator) *Controller {
	return &Controller{users: users, logger: log, validator: val}
}

// bind decodes the JSON body into dst and runs struct validation
func (ctl *Controller) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, errors.BadRequest("Invalid request body"))
		return false
	}
	if verrs := ctl.validator.Validate(dst); len(verrs) > 0 {
		Error(c, errors.ValidationError("Validation failed", verrs))
		return false
	}
	return true
}

func (ctl *Controller) fail(c *gin.Context, err error, msg string) {
	if appErr, ok := errors.As(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		Error(c, appErr)
		return
	}
	ctl.logger.ErrorWithErr(err, msg)
	Error(c, errors.Internal(msg, err))
}

// Profile

func (ctl *Controller) GetProfile(c *gin.Context) {
	u, err := ctl.users.GetByID(c.Request.Context(), currentUser(c))
	if err != nil {
		ctl.fail(c, err, "Failed to load profile")
		return
	}
	JSON(c, http.StatusOK, dto.ToUserDTO(u))
}

func (ctl *Controller) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !ctl.bind(c, &req) {
		return
	}
	u, err := ctl.users.UpdateProfile(c.Request.Context(), currentUser(c), user.ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		ResidentID: req.ResidentID,
	})
	if err != nil {
		ctl.fail(c, err, "Failed to update profile")
		return
	}
	Message(c, http.StatusOK, "Profile updated", dto.ToUserDTO(u))
}

// Account

func (ctl *Controller) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !ctl.bind(c, &req) {
		return
	}
	if err := ctl.users.ChangePassword(c.Request.Context(), currentUser(c), req.CurrentPassword, req.NewPassword); err != nil {
		ctl.fail(c, err, "Failed to change password")
		return
	}
	Message(c, http.StatusOK, "Password changed", nil)
}

// Notifications

func (ctl *Controller) GetNotificationSettings(c *gin.Context) {
	u, err := ctl.users.GetByID(c.Request.Context(), currentUser(c))
	if err != nil {
		ctl.fail(c, err, "Failed to load notification settings")
		return
	}
	JSON(c, http.StatusOK, dto.NotificationSettings{RenewalReminders: u.NotifyRenewals})
}

func (ctl *Controller) UpdateNotificationSettings(c *gin.Context) {
	var req dto.NotificationSettings
	if !ctl.bind(c, &req) {
		return
	}
	u, err := ctl.users.SetRenewalNotifications(c.Request.Context(), currentUser(c), req.RenewalReminders)
	if err != nil {
		ctl.fail(c, err, "Failed to update notification settings")
		return
	}
	Message(c, http.StatusOK, "Notification settings updated", dto.NotificationSettings{RenewalReminders: u.NotifyRenewals})
}
