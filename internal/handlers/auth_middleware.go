package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
)

// Context keys set by the auth middleware.
const (
	contextActorKey     = "actor"
	contextPrincipalKey = "principal"
	contextRoleKey      = "user_role"
	contextStateKey     = "session_state"
)

// AuthMiddleware verifies bearer tokens and resolves the caller's role on
// every request.
type AuthMiddleware struct {
	authService services.AuthService
}

func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate extracts the bearer token, verifies it and resolves the
// caller's role. Unassigned users pass authentication; role checks happen
// in RequireRole.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "missing or malformed authorization header",
			})
			c.Abort()
			return
		}

		principal, resolution, err := am.authService.Verify(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			response := ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid or expired token",
			}
			if errors.Is(err, auth.ErrStoreUnavailable) {
				// Token was fine; the role stores were not. Never treat an
				// outage as a missing role.
				status = http.StatusServiceUnavailable
				response = ErrorResponse{
					Error:   "role_resolution_unavailable",
					Message: "Unable to verify your access right now. Please try again.",
				}
			}
			c.JSON(status, response)
			c.Abort()
			return
		}

		phase := auth.PhaseActive
		if resolution.Unassigned() {
			phase = auth.PhaseUnassigned
		}
		state := auth.SessionState{
			Phase:     phase,
			Principal: principal,
			Role:      resolution.Role,
		}

		c.Set(contextPrincipalKey, principal)
		c.Set(contextRoleKey, resolution.Role)
		c.Set(contextStateKey, state)
		c.Set(contextActorKey, services.Actor{
			UID:  principal.UID,
			Name: principal.DisplayName,
			Role: resolution.Role,
		})

		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Admins pass every
// check. Denied callers get their own landing route in the response so
// clients can navigate instead of erroring.
func (am *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		stateVal, exists := c.Get(contextStateKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			c.Abort()
			return
		}

		state := stateVal.(auth.SessionState)
		decision := auth.Decide(state, roles...)
		if decision.Verdict != auth.VerdictAllow {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  fmt.Sprintf("route requires one of: %v", roles),
				"redirect": decision.Target,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetActorFromContext extracts the authenticated actor set by Authenticate.
func GetActorFromContext(c *gin.Context) (services.Actor, error) {
	actorVal, exists := c.Get(contextActorKey)
	if !exists {
		return services.Actor{}, fmt.Errorf("actor not found in context")
	}
	actor, ok := actorVal.(services.Actor)
	if !ok {
		return services.Actor{}, fmt.Errorf("invalid actor type in context")
	}
	return actor, nil
}

// GetSessionStateFromContext extracts the caller's session state.
func GetSessionStateFromContext(c *gin.Context) (auth.SessionState, error) {
	stateVal, exists := c.Get(contextStateKey)
	if !exists {
		return auth.SessionState{}, fmt.Errorf("session state not found in context")
	}
	state, ok := stateVal.(auth.SessionState)
	if !ok {
		return auth.SessionState{}, fmt.Errorf("invalid session state type in context")
	}
	return state, nil
}
