package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// MapHandler maps, their progress and their exports
type MapHandler struct {
	mapSvc      service.MapService
	progressSvc service.ProgressService
	exportSvc   service.ExportService
}

// NewMapHandler creates a MapHandler
func NewMapHandler(mapSvc service.MapService, progressSvc service.ProgressService, exportSvc service.ExportService) *MapHandler {
	return &MapHandler{mapSvc: mapSvc, progressSvc: progressSvc, exportSvc: exportSvc}
}

// ListMaps GET /api/v1/maps
func (h *MapHandler) ListMaps(c *gin.Context) {
	var req dto.MapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	maps, err := h.mapSvc.List(c.Request.Context(), &req, callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	response.OK(c, gin.H{"list": maps})
}

// CreateMap POST /api/v1/maps
func (h *MapHandler) CreateMap(c *gin.Context) {
	var req dto.CreateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	m, err := h.mapSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	response.Created(c, m)
}

// GetMap GET /api/v1/maps/:id
func (h *MapHandler) GetMap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	m, err := h.mapSvc.Get(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	response.OK(c, m)
}

// UpdateMap PUT /api/v1/maps/:id
func (h *MapHandler) UpdateMap(c *gin.Context) {
	var req dto.UpdateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	m, err := h.mapSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	response.OK(c, m)
}

// DeleteMap DELETE /api/v1/maps/:id
func (h *MapHandler) DeleteMap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.mapSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleMapError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetProgress GET /api/v1/maps/:id/progress
func (h *MapHandler) GetProgress(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progress, err := h.progressSvc.Get(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	response.OK(c, progress)
}

// Export GET /api/v1/maps/:id/export?format=xlsx|ics
func (h *MapHandler) Export(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", service.ExportFormatXLSX)
	file, err := h.exportSvc.Export(c.Request.Context(), c.Param("id"), format, callerID)
	if err != nil {
		handleMapError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content.Bytes())
}

// writeMapAccessError handles the errors every map-scoped route shares.
// It reports whether err was one of them.
func writeMapAccessError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrMapNotFound):
		response.NotFound(c, 12001, "map not found")
	case errors.Is(err, service.ErrMapForbidden):
		response.Forbidden(c, response.CodeForbidden, "this map belongs to another user")
	default:
		return false
	}
	return true
}

func handleMapError(c *gin.Context, err error) {
	if writeMapAccessError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, 12002, "format must be xlsx or ics")
	default:
		response.InternalError(c)
	}
}
