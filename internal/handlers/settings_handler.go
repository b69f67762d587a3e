package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type SettingsHandler struct {
	BaseHandler
	service services.SettingsService
}

func NewSettingsHandler(service services.SettingsService, logger utils.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *SettingsHandler) ListAdmins(c *gin.Context) {
	h.LogRequest(c, "listing admins")

	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": admins, "total": len(admins)})
}

func (h *SettingsHandler) CreateAdmin(c *gin.Context) {
	h.LogRequest(c, "creating admin")

	var req services.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	admin, err := h.service.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *SettingsHandler) RemoveAdmin(c *gin.Context) {
	uid := c.Param("uid")
	h.LogRequest(c, "removing admin", "uid", uid)

	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	if err := h.service.RemoveAdmin(c.Request.Context(), actor, uid); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin removed"})
}

// GetProfile returns the signed-in admin's own settings record.
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	admin, err := h.service.GetProfile(c.Request.Context(), actor.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

// UpdateProfile merges changes into the signed-in admin's settings record.
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req services.UpdateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "updating admin profile", "uid", actor.UID)

	admin, err := h.service.UpdateProfile(c.Request.Context(), actor.UID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

// SearchDirectory pages through the identity directory.
func (h *SettingsHandler) SearchDirectory(c *gin.Context) {
	h.LogRequest(c, "searching directory")

	req := services.DirectorySearchRequest{
		Query:    c.Query("q"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "size", 10),
	}

	resp, err := h.service.SearchDirectory(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
