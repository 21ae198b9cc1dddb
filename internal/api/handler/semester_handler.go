package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// SemesterHandler semesters of a map
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler creates a SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// ListSemesters GET /api/v1/maps/:id/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semesters, err := h.semesterSvc.List(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		handleSemesterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// CreateSemester POST /api/v1/maps/:id/semesters
func (h *SemesterHandler) CreateSemester(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semester, err := h.semesterSvc.Create(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleSemesterError(c, err)
		return
	}

	response.Created(c, semester)
}

// UpdateSemester PUT /api/v1/maps/:id/semesters/:semester_id
func (h *SemesterHandler) UpdateSemester(c *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semester, err := h.semesterSvc.Update(c.Request.Context(), c.Param("id"), c.Param("semester_id"), &req, callerID)
	if err != nil {
		handleSemesterError(c, err)
		return
	}

	response.OK(c, semester)
}

// DeleteSemester DELETE /api/v1/maps/:id/semesters/:semester_id
func (h *SemesterHandler) DeleteSemester(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.semesterSvc.Delete(c.Request.Context(), c.Param("id"), c.Param("semester_id"), callerID); err != nil {
		handleSemesterError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleSemesterError(c *gin.Context, err error) {
	if writeMapAccessError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 13001, "semester not found in this map")
	case errors.Is(err, service.ErrSemesterDuplicate):
		response.Conflict(c, 13002, "the map already has this term and year")
	case errors.Is(err, service.ErrSemesterNotEmpty):
		response.Conflict(c, 13003, "move or delete the semester's classes first")
	default:
		response.InternalError(c)
	}
}
