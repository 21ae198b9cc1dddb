package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/config"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

const refreshCookieName = "refresh_token"

// AuthHandler sign-up, login, token refresh and the caller's own profile
type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
	cookie  config.CookieConfig
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc, cookie: cookie}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, user)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken, tokens.RefreshTTLSeconds)
	response.OK(c, tokens)
}

// Refresh POST /api/v1/auth/refresh
// The token is read from the body, falling back to the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(refreshCookieName)
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken, tokens.RefreshTTLSeconds)
	response.OK(c, tokens)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	h.setRefreshCookie(c, "", -1)
	response.OK(c, nil)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateMe PUT /api/v1/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ChangePassword PUT /api/v1/auth/me/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookie.SameSite))
	c.SetCookie(refreshCookieName, token, maxAge, "/api/v1/auth", h.cookie.Domain, h.cookie.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// handleAuthError maps auth and user errors to business codes
func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11002, "email is already registered")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, 11003, "refresh token is invalid or revoked")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 11004, "current password is incorrect")
	case errors.Is(err, service.ErrUserSelfRoleChange):
		response.BadRequest(c, 11005, "cannot change your own role")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11006, "user not found")
	default:
		response.InternalError(c)
	}
}
