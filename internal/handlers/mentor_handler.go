package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type MentorHandler struct {
	BaseHandler
	service services.MentorService
}

func NewMentorHandler(service services.MentorService, logger utils.Logger) *MentorHandler {
	return &MentorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *MentorHandler) CreateMentor(c *gin.Context) {
	h.LogRequest(c, "creating mentor")

	var req services.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	mentor, err := h.service.CreateMentor(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mentor)
}

func (h *MentorHandler) GetMentor(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "getting mentor", "uid", uid)

	mentor, err := h.service.GetMentor(c.Request.Context(), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mentor)
}

func (h *MentorHandler) UpdateMentor(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "updating mentor", "uid", uid)

	var req services.UpdateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	mentor, err := h.service.UpdateMentor(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mentor)
}

func (h *MentorHandler) DeleteMentor(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "deleting mentor", "uid", uid)

	if err := h.service.DeleteMentor(c.Request.Context(), uid); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "mentor deleted"})
}

// ListMentors serves both the admin console and the student's mentor
// picker, so it is open to every signed-in role.
func (h *MentorHandler) ListMentors(c *gin.Context) {
	h.LogRequest(c, "listing mentors")

	req := services.ListMentorsRequest{
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "size", 10),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if expertise := c.Query("expertise"); expertise != "" {
		req.Expertise = &expertise
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.MentorStatus(statusStr)
		req.Status = &status
	}

	resp, err := h.service.ListMentors(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetOwnProfile returns the signed-in mentor's profile.
func (h *MentorHandler) GetOwnProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	mentor, err := h.service.GetMentor(c.Request.Context(), actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mentor)
}
