package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// ClassHandler classes placed in a map
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// ListClasses GET /api/v1/maps/:id/classes?semester_id=
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var req dto.ClassListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	classes, err := h.classSvc.List(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// CreateClass POST /api/v1/maps/:id/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleClassError(c, err)
		return
	}

	response.Created(c, class)
}

// UpdateClass PUT /api/v1/maps/:id/classes/:class_id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), c.Param("id"), c.Param("class_id"), &req, callerID)
	if err != nil {
		handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// MoveClass PUT /api/v1/maps/:id/classes/:class_id/move
func (h *ClassHandler) MoveClass(c *gin.Context) {
	var req dto.MoveClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Move(c.Request.Context(), c.Param("id"), c.Param("class_id"), &req, callerID)
	if err != nil {
		handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// DeleteClass DELETE /api/v1/maps/:id/classes/:class_id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), c.Param("class_id"), callerID); err != nil {
		handleClassError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleClassError(c *gin.Context, err error) {
	if writeMapAccessError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 14001, "class not found in this map")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 13001, "semester not found in this map")
	case errors.Is(err, service.ErrClassSemesterMismatch):
		response.BadRequest(c, 14002, "semester belongs to another map")
	case errors.Is(err, service.ErrUnknownTag):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14003, "tag does not match any requirement of this map", err.Error())
	case errors.Is(err, service.ErrClassIncomplete):
		response.BadRequest(c, 14004, "subject, number and name are required")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "course not found")
	default:
		response.InternalError(c)
	}
}
