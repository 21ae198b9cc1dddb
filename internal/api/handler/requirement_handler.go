package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// RequirementHandler degree requirements of a map
type RequirementHandler struct {
	requirementSvc service.RequirementService
}

// NewRequirementHandler creates a RequirementHandler
func NewRequirementHandler(requirementSvc service.RequirementService) *RequirementHandler {
	return &RequirementHandler{requirementSvc: requirementSvc}
}

// ListRequirements GET /api/v1/maps/:id/requirements
func (h *RequirementHandler) ListRequirements(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reqs, err := h.requirementSvc.List(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		handleRequirementError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reqs})
}

// CreateRequirement POST /api/v1/maps/:id/requirements
func (h *RequirementHandler) CreateRequirement(c *gin.Context) {
	var req dto.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	r, err := h.requirementSvc.Create(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleRequirementError(c, err)
		return
	}

	response.Created(c, r)
}

// UpdateRequirement PUT /api/v1/maps/:id/requirements/:requirement_id
func (h *RequirementHandler) UpdateRequirement(c *gin.Context) {
	var req dto.UpdateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	r, err := h.requirementSvc.Update(c.Request.Context(), c.Param("id"), c.Param("requirement_id"), &req, callerID)
	if err != nil {
		handleRequirementError(c, err)
		return
	}

	response.OK(c, r)
}

// DeleteRequirement DELETE /api/v1/maps/:id/requirements/:requirement_id
func (h *RequirementHandler) DeleteRequirement(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.requirementSvc.Delete(c.Request.Context(), c.Param("id"), c.Param("requirement_id"), callerID); err != nil {
		handleRequirementError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleRequirementError(c *gin.Context, err error) {
	if writeMapAccessError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrRequirementNotFound):
		response.NotFound(c, 16001, "requirement not found in this map")
	case errors.Is(err, service.ErrRequirementDuplicateTag):
		response.Conflict(c, 16002, "the map already has a requirement with this tag")
	default:
		response.InternalError(c)
	}
}
