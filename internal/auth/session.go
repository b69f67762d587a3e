package auth

import (
	"sync"

	"github.com/pixalara/placement-service/internal/models"
)

// SessionPhase is the lifecycle phase of a session.
type SessionPhase string

const (
	// PhaseUnauthenticated means no user is signed in.
	PhaseUnauthenticated SessionPhase = "unauthenticated"

	// PhaseAuthenticating means credentials were accepted and role
	// resolution is in flight. Guards hold rather than redirect.
	PhaseAuthenticating SessionPhase = "authenticating"

	// PhaseActive means the user is signed in with a resolved role.
	PhaseActive SessionPhase = "active"

	// PhaseUnassigned means the user authenticated but no role store
	// claimed them. Terminal until an admin assigns a role.
	PhaseUnassigned SessionPhase = "unassigned"
)

// SessionState is an immutable snapshot of a session.
type SessionState struct {
	Phase     SessionPhase `json:"phase"`
	Principal *Principal   `json:"principal,omitempty"`
	Role      models.Role  `json:"role,omitempty"`

	// Epoch increments on every sign-in attempt and sign-out. Commits
	// carrying a stale epoch are discarded, so a slow resolution can
	// never overwrite the outcome of a newer attempt.
	Epoch uint64 `json:"-"`
}

// SessionManager owns the session state machine. All transitions are
// serialized; reads return snapshots.
//
// Valid transitions:
//
//	unauthenticated -> authenticating        (Begin)
//	authenticating  -> active | unassigned   (Complete)
//	authenticating  -> unauthenticated       (Fail)
//	any             -> unauthenticated       (SignOut)
type SessionManager struct {
	mu    sync.RWMutex
	state SessionState
}

// NewSessionManager creates a manager in the unauthenticated phase.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		state: SessionState{Phase: PhaseUnauthenticated},
	}
}

// Current returns a snapshot of the session state.
func (m *SessionManager) Current() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Begin starts a sign-in attempt and returns the epoch that a later
// Complete or Fail must present. Beginning while another attempt is in
// flight supersedes it: the older attempt's epoch goes stale.
func (m *SessionManager) Begin(principal *Principal) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = SessionState{
		Phase:     PhaseAuthenticating,
		Principal: principal,
		Epoch:     m.state.Epoch + 1,
	}
	return m.state.Epoch
}

// Complete commits the resolved role for the attempt identified by
// epoch. RoleUnassigned lands in the unassigned phase; any other role
// activates the session. Stale epochs are ignored and reported false.
func (m *SessionManager) Complete(epoch uint64, role models.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.state.Epoch || m.state.Phase != PhaseAuthenticating {
		return false
	}

	phase := PhaseActive
	if role == models.RoleUnassigned {
		phase = PhaseUnassigned
	}

	m.state = SessionState{
		Phase:     phase,
		Principal: m.state.Principal,
		Role:      role,
		Epoch:     epoch,
	}
	return true
}

// Fail aborts the attempt identified by epoch, returning the session to
// unauthenticated. Stale epochs are ignored.
func (m *SessionManager) Fail(epoch uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.state.Epoch || m.state.Phase != PhaseAuthenticating {
		return false
	}

	m.state = SessionState{
		Phase: PhaseUnauthenticated,
		Epoch: epoch,
	}
	return true
}

// SignOut clears the session. Safe to call in any phase, any number of
// times; signing out while already signed out is a no-op apart from
// invalidating in-flight attempts.
func (m *SessionManager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = SessionState{
		Phase: PhaseUnauthenticated,
		Epoch: m.state.Epoch + 1,
	}
}
