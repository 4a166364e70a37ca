package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

const oauthStateCookie = "oauthState"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	google      *auth.GoogleProvider
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler; google may be nil when sign-in with Google is not configured
func NewAuthHandler(
	userService user.Service,
	google *auth.GoogleProvider,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		google:      google,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// issueTokens mints a token pair and sets the auth cookies
func (h *AuthHandler) issueTokens(w http.ResponseWriter, u *user.User) (auth.TokenPair, error) {
	tokens, err := auth.MintTokens(
		u.ID,
		u.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		return auth.TokenPair{}, err
	}

	h.setCookie(w, middleware.AccessCookie, tokens.AccessToken, h.config.Auth.AccessTokenExpiry)
	h.setCookie(w, middleware.RefreshCookie, tokens.RefreshToken, h.config.Auth.RefreshTokenExpiry)
	return tokens, nil
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, status int, u *user.User) {
	tokens, err := h.issueTokens(w, u)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(u),
	})
}

// Login handles member login
// @Summary Member login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	u, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		writeServiceError(w, h.logger, err, "Failed to authenticate")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Member logged in")

	h.respondWithTokens(w, http.StatusOK, u)
}

// Register handles member registration
// @Summary Member registration
// @Description Create a member account. agreeToTerms must be true.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "Member registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	u, err := h.userService.Register(r.Context(), user.Registration{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		ResidentID:   req.ResidentID,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create account")
		return
	}

	h.respondWithTokens(w, http.StatusCreated, u)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Description Accepts the refresh token in the body or the refreshToken cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if req.RefreshToken == "" {
		if c, err := r.Cookie(middleware.RefreshCookie); err == nil {
			req.RefreshToken = c.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := auth.ParseRefresh(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired refresh token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.IsNotFound(err) {
			utils.WriteError(w, errors.Unauthorized("Account no longer exists"))
			return
		}
		writeServiceError(w, h.logger, err, "Failed to refresh session")
		return
	}

	h.respondWithTokens(w, http.StatusOK, u)
}

// Me returns the signed-in member
// @Summary Current member
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load account")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

// Logout clears the auth cookies
// @Summary Member logout
// @Tags Auth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setCookie(w, middleware.AccessCookie, "", 0)
	h.setCookie(w, middleware.RefreshCookie, "", 0)
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

// ForgotPassword starts a password reset. The response never reveals whether the email exists.
// @Summary Request a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 202 {object} utils.SuccessResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	token, err := h.userService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		// the caller still gets 202 so the endpoint cannot be used to probe accounts
		h.logger.ErrorWithErr(err, "Failed to create password reset")
	} else if token != "" {
		// no mail transport: the reset link is written to the log
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
			"link":  h.config.Server.FrontendURL + "/reset-password?token=" + token,
		}).Info("Password reset requested")
	}

	utils.WriteSuccessWithMessage(w, http.StatusAccepted, "If the account exists, a reset link has been sent", nil)
}

// ResetPassword sets a new password using a reset token
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if appErr := decodeAndValidate(r, h.validator, &req, false); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.userService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, h.logger, err, "Failed to reset password")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Password updated", nil)
}

// GoogleLogin redirects to the Google consent page
// @Summary Sign in with Google
// @Tags Auth
// @Success 307
// @Failure 503 {object} utils.ErrorResponse "Google sign-in not configured"
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.WriteError(w, errors.ServiceUnavailable("Google sign-in is not configured"))
		return
	}

	state, err := auth.RandomToken(24)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to start sign-in", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		// Lax so the cookie comes back on the redirect from Google
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   600,
	})

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes Google sign-in and redirects to the dashboard
// @Summary Google sign-in callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.WriteError(w, errors.ServiceUnavailable("Google sign-in is not configured"))
		return
	}

	fail := func(reason string, err error) {
		h.logger.WithError(err).Warn("Google sign-in failed: " + reason)
		http.Redirect(w, r, h.config.Server.FrontendURL+"/login?error=oauth_failed", http.StatusTemporaryRedirect)
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		fail("state mismatch", err)
		return
	}
	h.setCookie(w, oauthStateCookie, "", 0)

	code := r.URL.Query().Get("code")
	if code == "" {
		fail("missing code", nil)
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		fail("exchange", err)
		return
	}

	u, err := h.userService.SignInWithGoogle(r.Context(), profile.ID, profile.Email, profile.GivenName, profile.FamilyName)
	if err != nil {
		fail("sign in", err)
		return
	}

	if _, err := h.issueTokens(w, u); err != nil {
		fail("tokens", err)
		return
	}

	h.logger.With("user_id", u.ID).Info("Member signed in with Google")
	http.Redirect(w, r, h.config.Server.FrontendURL+"/dashboard", http.StatusTemporaryRedirect)
}
