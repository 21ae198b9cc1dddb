package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/response"
)

// CourseHandler the shared course bank
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates a CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses GET /api/v1/courses?q=&subject=&tag=&page=&page_size=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	courses, total, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OKPage(c, courses, total, req.GetPage(), req.GetPageSize())
}

// GetCourse GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse DELETE /api/v1/courses/:id (admin)
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportCourses POST /api/v1/courses/import (admin)
// multipart/form-data, field "file", an .xlsx workbook
func (h *CourseHandler) ImportCourses(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeParamError, "upload an .xlsx file in the \"file\" field")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		response.BadRequest(c, 15003, "only .xlsx files are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	rows, err := h.courseSvc.ParseImportFile(file)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 15003, "spreadsheet could not be imported", err.Error())
		return
	}

	result, err := h.courseSvc.ImportCourses(c.Request.Context(), rows, callerID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "course not found")
	case errors.Is(err, service.ErrCourseDuplicateCode):
		response.Conflict(c, 15002, "a course with this code already exists")
	default:
		response.InternalError(c)
	}
}
