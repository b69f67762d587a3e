package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login authenticates an email/password pair and returns the session
// payload with the resolved role and redirect target.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "login attempt")

	var req services.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Session returns the caller's current session: role is re-resolved per
// request, so a record change takes effect without a new token.
func (h *AuthHandler) Session(c *gin.Context) {
	state, err := GetSessionStateFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, services.SessionResponse{
		UID:        state.Principal.UID,
		Email:      state.Principal.Email,
		Name:       state.Principal.DisplayName,
		AvatarURL:  state.Principal.AvatarURL,
		Role:       state.Role,
		Unassigned: state.Role == models.RoleUnassigned,
		Redirect:   auth.LandingRoute(state.Role),
	})
}

// Logout acknowledges a sign-out. Tokens are stateless, so the server
// holds nothing to revoke; repeating the call is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "logout")

	c.JSON(http.StatusOK, gin.H{
		"message":  "signed out",
		"redirect": auth.LoginRoute,
	})
}

type authorizeRequest struct {
	Allowed []models.Role `json:"allowed"`
}

// Authorize answers a route guard check for the caller: allow, or a
// redirect to the caller's own landing route.
func (h *AuthHandler) Authorize(c *gin.Context) {
	var req authorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	state, err := GetSessionStateFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, auth.Decide(state, req.Allowed...))
}
