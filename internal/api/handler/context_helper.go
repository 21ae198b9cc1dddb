package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/pkg/jwt"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// Context keys set by middleware.JWTAuth
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// MustGetUserID extracts the authenticated user id. On failure it writes a 401
// and returns false; the caller should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims extracts the parsed access token claims
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, response.CodeUnauthenticated, "not authenticated")
		return nil, false
	}
	return claims, true
}

// bindFailed writes the standard validation error
func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeParamError, "invalid parameters", err.Error())
}
