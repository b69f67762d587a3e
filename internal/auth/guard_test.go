package auth

import (
	"testing"

	"github.com/pixalara/placement-service/internal/models"
)

func TestLandingRoute(t *testing.T) {
	tests := []struct {
		role models.Role
		want string
	}{
		{models.RoleAdmin, "/admin/dashboard"},
		{models.RoleStudent, "/student/dashboard"},
		{models.RoleJobSeeker, "/job-seeker/dashboard"},
		{models.RoleMentor, "/mentor/dashboard"},
		{models.RoleUnassigned, UnassignedRoute},
		{models.Role("unknown"), UnassignedRoute},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := LandingRoute(tt.role); got != tt.want {
				t.Errorf("LandingRoute(%v) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	active := func(role models.Role) SessionState {
		return SessionState{Phase: PhaseActive, Role: role, Principal: &Principal{UID: "u"}}
	}

	tests := []struct {
		name    string
		state   SessionState
		allowed []models.Role
		want    Decision
	}{
		{
			name:  "unauthenticated redirects to login",
			state: SessionState{Phase: PhaseUnauthenticated},
			want:  Decision{Verdict: VerdictRedirect, Target: LoginRoute},
		},
		{
			name:  "authenticating holds",
			state: SessionState{Phase: PhaseAuthenticating},
			want:  Decision{Verdict: VerdictLoading},
		},
		{
			name:  "unassigned redirects to notice",
			state: SessionState{Phase: PhaseUnassigned, Role: models.RoleUnassigned},
			want:  Decision{Verdict: VerdictRedirect, Target: UnassignedRoute},
		},
		{
			name:    "matching role allowed",
			state:   active(models.RoleStudent),
			allowed: []models.Role{models.RoleStudent},
			want:    Decision{Verdict: VerdictAllow},
		},
		{
			name:    "mismatched role sent to own landing",
			state:   active(models.RoleStudent),
			allowed: []models.Role{models.RoleMentor},
			want:    Decision{Verdict: VerdictRedirect, Target: "/student/dashboard"},
		},
		{
			name:    "admin passes every check",
			state:   active(models.RoleAdmin),
			allowed: []models.Role{models.RoleMentor},
			want:    Decision{Verdict: VerdictAllow},
		},
		{
			name:  "signed-in only route",
			state: active(models.RoleJobSeeker),
			want:  Decision{Verdict: VerdictAllow},
		},
		{
			name:    "shared route accepts either role",
			state:   active(models.RoleMentor),
			allowed: []models.Role{models.RoleStudent, models.RoleMentor},
			want:    Decision{Verdict: VerdictAllow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.state, tt.allowed...); got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
