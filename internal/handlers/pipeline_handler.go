package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type PipelineHandler struct {
	BaseHandler
	service services.PipelineService
}

func NewPipelineHandler(service services.PipelineService, logger utils.Logger) *PipelineHandler {
	return &PipelineHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== PUBLIC ENDPOINTS =====

// Register handles the public placement-registration form. No
// authentication: this is how job seekers enter the system.
func (h *PipelineHandler) Register(c *gin.Context) {
	h.LogRequest(c, "job seeker registration")

	var req services.RegisterJobSeekerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	seeker, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, seeker)
}

// ===== ADMIN ENDPOINTS =====

func (h *PipelineHandler) GetJobSeeker(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "getting job seeker", "uid", uid)

	seeker, err := h.service.GetJobSeeker(c.Request.Context(), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

func (h *PipelineHandler) UpdateJobSeeker(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "updating job seeker", "uid", uid)

	var req services.UpdateJobSeekerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	seeker, err := h.service.UpdateJobSeeker(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// DeleteJobSeeker removes the pipeline record and the account behind it.
func (h *PipelineHandler) DeleteJobSeeker(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "deleting job seeker", "uid", uid)

	if err := h.service.DeleteJobSeeker(c.Request.Context(), uid); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "job seeker deleted"})
}

func (h *PipelineHandler) ListJobSeekers(c *gin.Context) {
	h.LogRequest(c, "listing job seekers")

	req := services.ListJobSeekersRequest{
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "size", 10),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if stageStr := c.Query("stage"); stageStr != "" {
		stage := models.PipelineStage(stageStr)
		req.Stage = &stage
	}
	if field := c.Query("target_field"); field != "" {
		req.TargetField = &field
	}
	if company := c.Query("company"); company != "" {
		req.Company = &company
	}
	if feeStr := c.Query("registration_fee"); feeStr != "" {
		fee := models.FeeStatus(feeStr)
		req.RegistrationFee = &fee
	}
	if feeStr := c.Query("final_fee"); feeStr != "" {
		fee := models.FeeStatus(feeStr)
		req.FinalFee = &fee
	}

	resp, err := h.service.ListJobSeekers(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AdvanceStage moves a job seeker to the next pipeline stage.
func (h *PipelineHandler) AdvanceStage(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "advancing pipeline stage", "uid", uid)

	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	seeker, err := h.service.AdvanceStage(c.Request.Context(), uid, actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// SetStage moves a job seeker to an explicit stage.
func (h *PipelineHandler) SetStage(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "setting pipeline stage", "uid", uid)

	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req services.SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	seeker, err := h.service.SetStage(c.Request.Context(), uid, &req, actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

func (h *PipelineHandler) UpdateFees(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "updating fees", "uid", uid)

	var req services.UpdateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	seeker, err := h.service.UpdateFees(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// ===== SELF-SERVICE ENDPOINTS =====

// GetOwnProfile returns the signed-in job seeker's profile.
func (h *PipelineHandler) GetOwnProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	seeker, err := h.service.GetJobSeeker(c.Request.Context(), actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// UpdateOwnProfile lets a job seeker maintain their own resume fields.
// Stage, company and remarks belong to the admin console; requests that
// try to touch them are rejected.
func (h *PipelineHandler) UpdateOwnProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req services.UpdateJobSeekerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	if req.Company != nil || req.Remarks != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "placement fields can only be changed by an admin",
		})
		return
	}

	seeker, err := h.service.UpdateJobSeeker(c.Request.Context(), actor.UID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seeker)
}
