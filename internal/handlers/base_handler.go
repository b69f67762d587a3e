package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
	"github.com/pixalara/placement-service/internal/validator"
)

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the cross-cutting pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of request handling with the request-scoped
// logger.
func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// LogError logs a request-scoped error.
func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// handleServiceError maps service errors to HTTP status codes.
func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid email or password",
		})

	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired token",
		})

	case errors.Is(err, auth.ErrStoreUnavailable):
		// A failed role probe is a backend outage, never "no role".
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "role_resolution_unavailable",
			Message: "Unable to verify your access right now. Please try again.",
		})

	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrChatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})

	case errors.Is(err, services.ErrEmailRegistered),
		errors.Is(err, services.ErrCourseTitleTaken),
		errors.Is(err, services.ErrRoleAlreadyAssigned):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})

	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		})

	default:
		h.LogError(c, err, "unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}
