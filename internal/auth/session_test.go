package auth

import (
	"testing"

	"github.com/pixalara/placement-service/internal/models"
)

func TestSessionManager_SignInFlow(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role
		wantPhase SessionPhase
	}{
		{name: "admin activates", role: models.RoleAdmin, wantPhase: PhaseActive},
		{name: "student activates", role: models.RoleStudent, wantPhase: PhaseActive},
		{name: "unassigned is terminal", role: models.RoleUnassigned, wantPhase: PhaseUnassigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSessionManager()
			p := &Principal{UID: "uid-1", Email: "u@example.com"}

			epoch := m.Begin(p)
			if got := m.Current().Phase; got != PhaseAuthenticating {
				t.Fatalf("phase after Begin = %v, want authenticating", got)
			}

			if !m.Complete(epoch, tt.role) {
				t.Fatal("Complete() rejected a current epoch")
			}

			state := m.Current()
			if state.Phase != tt.wantPhase {
				t.Errorf("phase = %v, want %v", state.Phase, tt.wantPhase)
			}
			if state.Role != tt.role {
				t.Errorf("role = %v, want %v", state.Role, tt.role)
			}
			if state.Principal == nil || state.Principal.UID != "uid-1" {
				t.Errorf("principal = %+v, want uid-1", state.Principal)
			}
		})
	}
}

func TestSessionManager_StaleEpochDiscarded(t *testing.T) {
	m := NewSessionManager()

	first := m.Begin(&Principal{UID: "slow"})
	second := m.Begin(&Principal{UID: "fast"})

	// The newer attempt resolves first.
	if !m.Complete(second, models.RoleMentor) {
		t.Fatal("Complete() rejected the current attempt")
	}

	// The older attempt's resolution arrives late and must not land.
	if m.Complete(first, models.RoleAdmin) {
		t.Fatal("Complete() accepted a superseded attempt")
	}

	state := m.Current()
	if state.Role != models.RoleMentor || state.Principal.UID != "fast" {
		t.Errorf("state = %+v, want the newer attempt's outcome", state)
	}
}

func TestSessionManager_SignOutIdempotent(t *testing.T) {
	m := NewSessionManager()

	epoch := m.Begin(&Principal{UID: "uid-1"})
	m.Complete(epoch, models.RoleStudent)

	m.SignOut()
	if got := m.Current().Phase; got != PhaseUnauthenticated {
		t.Fatalf("phase after SignOut = %v, want unauthenticated", got)
	}

	// Repeated sign-out stays put.
	m.SignOut()
	m.SignOut()
	if got := m.Current(); got.Phase != PhaseUnauthenticated || got.Principal != nil {
		t.Errorf("state after repeated SignOut = %+v", got)
	}
}

func TestSessionManager_SignOutInvalidatesInFlightAttempt(t *testing.T) {
	m := NewSessionManager()

	epoch := m.Begin(&Principal{UID: "uid-1"})
	m.SignOut()

	if m.Complete(epoch, models.RoleAdmin) {
		t.Fatal("Complete() landed after sign-out")
	}
	if got := m.Current().Phase; got != PhaseUnauthenticated {
		t.Errorf("phase = %v, want unauthenticated", got)
	}
}

func TestSessionManager_FailReturnsToUnauthenticated(t *testing.T) {
	m := NewSessionManager()

	epoch := m.Begin(&Principal{UID: "uid-1"})
	if !m.Fail(epoch) {
		t.Fatal("Fail() rejected a current epoch")
	}
	if got := m.Current().Phase; got != PhaseUnauthenticated {
		t.Errorf("phase = %v, want unauthenticated", got)
	}

	// A stale failure after a newer attempt must not abort it.
	next := m.Begin(&Principal{UID: "uid-2"})
	if m.Fail(epoch) {
		t.Fatal("Fail() accepted a stale epoch")
	}
	if !m.Complete(next, models.RoleJobSeeker) {
		t.Fatal("Complete() rejected the live attempt")
	}
}
