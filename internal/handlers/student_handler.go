package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ADMIN ENDPOINTS =====

// CreateStudent onboards a student: provisions the account and writes the
// profile that assigns the student role.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	h.LogRequest(c, "creating student")

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	student, err := h.service.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "getting student", "uid", uid)

	student, err := h.service.GetStudent(c.Request.Context(), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "updating student", "uid", uid)

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	student, err := h.service.UpdateStudent(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "deleting student", "uid", uid)

	if err := h.service.DeleteStudent(c.Request.Context(), uid); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "listing students")

	req := services.ListStudentsRequest{
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "size", 10),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if courseIDStr := c.Query("course_id"); courseIDStr != "" {
		if id, err := strconv.ParseUint(courseIDStr, 10, 32); err == nil {
			courseID := uint(id)
			req.CourseID = &courseID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.StudentStatus(statusStr)
		req.Status = &status
	}

	resp, err := h.service.ListStudents(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== SELF-SERVICE ENDPOINTS =====

// GetOwnProfile returns the signed-in student's profile.
func (h *StudentHandler) GetOwnProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	student, err := h.service.GetStudent(c.Request.Context(), actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
