package auth

import (
	"github.com/pixalara/placement-service/internal/models"
)

// Route constants shared between the guard and the HTTP layer.
const (
	LoginRoute      = "/login"
	UnassignedRoute = "/unassigned"
)

// Verdict is the guard's answer for a route access check.
type Verdict string

const (
	// VerdictAllow grants access to the requested route.
	VerdictAllow Verdict = "allow"

	// VerdictLoading means the session is still resolving; hold the
	// request rather than committing to a redirect that may be wrong a
	// moment later.
	VerdictLoading Verdict = "loading"

	// VerdictRedirect denies access and names where to send the user.
	VerdictRedirect Verdict = "redirect"
)

// Decision is a guard verdict plus the redirect target when denied.
type Decision struct {
	Verdict Verdict `json:"verdict"`
	Target  string  `json:"target,omitempty"`
}

// LandingRoute returns the post-login destination for a role. Unassigned
// and unknown roles land on the unassigned notice.
func LandingRoute(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleStudent:
		return "/student/dashboard"
	case models.RoleJobSeeker:
		return "/job-seeker/dashboard"
	case models.RoleMentor:
		return "/mentor/dashboard"
	default:
		return UnassignedRoute
	}
}

// Decide evaluates whether the session may access a route restricted to
// the allowed roles. An empty allowed list means the route only requires
// a signed-in user. Admins pass every role check. Denied users are sent
// to their own landing route, never to an error page, so a deep link to
// someone else's area degrades into normal navigation.
func Decide(state SessionState, allowed ...models.Role) Decision {
	switch state.Phase {
	case PhaseAuthenticating:
		return Decision{Verdict: VerdictLoading}

	case PhaseUnauthenticated:
		return Decision{Verdict: VerdictRedirect, Target: LoginRoute}

	case PhaseUnassigned:
		return Decision{Verdict: VerdictRedirect, Target: UnassignedRoute}

	case PhaseActive:
		if len(allowed) == 0 || state.Role == models.RoleAdmin {
			return Decision{Verdict: VerdictAllow}
		}
		for _, role := range allowed {
			if state.Role == role {
				return Decision{Verdict: VerdictAllow}
			}
		}
		return Decision{Verdict: VerdictRedirect, Target: LandingRoute(state.Role)}

	default:
		return Decision{Verdict: VerdictRedirect, Target: LoginRoute}
	}
}
