package auth

import (
	"context"
	"errors"
)

// Provider errors
var (
	// ErrInvalidCredential indicates the email/password pair was rejected
	// by the identity provider.
	ErrInvalidCredential = errors.New("invalid email or password")

	// ErrInvalidToken indicates a token that failed signature or expiry
	// verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Provider abstracts the external identity provider. Authentication
// (who you are) happens here; authorization (what you may do) is the
// Resolver's job.
type Provider interface {
	// SignIn exchanges an email/password pair for an access token and the
	// authenticated principal. Returns ErrInvalidCredential on rejection.
	SignIn(ctx context.Context, email, password string) (string, *Principal, error)

	// ParseToken verifies an access token and returns its principal.
	// Returns ErrInvalidToken when verification fails.
	ParseToken(ctx context.Context, token string) (*Principal, error)

	// CreateUser provisions a new account and returns its uid. Used by
	// admin flows that onboard students, mentors and job seekers.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)

	// DeleteUser removes an account from the identity provider.
	DeleteUser(ctx context.Context, uid string) error
}
