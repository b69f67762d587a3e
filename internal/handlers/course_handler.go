package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "creating course")

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "getting course", "course_id", id)

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "updating course", "course_id", id)

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "deleting course", "course_id", id)

	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// ListCourses is open to every signed-in role: students see their own
// catalog, admins manage it.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "listing courses")

	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": len(courses)})
}

// ImportDefaults seeds the stock catalog.
func (h *CourseHandler) ImportDefaults(c *gin.Context) {
	h.LogRequest(c, "importing default courses")

	created, err := h.service.ImportDefaults(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "default courses imported", "created": created})
}

// pathID parses the :id path parameter, writing the error response itself.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid id parameter",
		})
		return 0, false
	}
	return uint(id), true
}
