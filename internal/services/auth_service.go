package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/validator"
)

type authService struct {
	provider  auth.Provider
	resolver  *auth.Resolver
	validator *validator.Validator
	logger    *slog.Logger
}

// NewAuthService creates the authentication service. The provider answers
// "who is this", the resolver answers "what are they".
func NewAuthService(provider auth.Provider, resolver *auth.Resolver, v *validator.Validator, logger *slog.Logger) AuthService {
	return &authService{
		provider:  provider,
		resolver:  resolver,
		validator: v,
		logger:    logger,
	}
}

// SignIn authenticates the credentials and resolves the caller's role.
// An unassigned outcome is a successful sign-in: the user lands on the
// unassigned notice, not an error page.
func (s *authService) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	s.logger.Info("sign-in attempt", "email", req.Email)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	token, principal, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, principal.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role for %s: %w", principal.UID, err)
	}

	s.logger.Info("sign-in succeeded",
		"uid", principal.UID,
		"role", resolution.Role,
		"unassigned", resolution.Unassigned())

	return &SignInResponse{
		Token:      token,
		UID:        principal.UID,
		Email:      principal.Email,
		Name:       principal.DisplayName,
		AvatarURL:  principal.AvatarURL,
		Role:       resolution.Role,
		Unassigned: resolution.Unassigned(),
		Redirect:   auth.LandingRoute(resolution.Role),
	}, nil
}

// Session verifies a token and re-resolves the caller's role. Roles are
// re-derived on every check so a record added or removed since sign-in
// takes effect without a new token.
func (s *authService) Session(ctx context.Context, token string) (*SessionResponse, error) {
	principal, resolution, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		UID:        principal.UID,
		Email:      principal.Email,
		Name:       principal.DisplayName,
		AvatarURL:  principal.AvatarURL,
		Role:       resolution.Role,
		Unassigned: resolution.Unassigned(),
		Redirect:   auth.LandingRoute(resolution.Role),
	}, nil
}

func (s *authService) Verify(ctx context.Context, token string) (*auth.Principal, auth.Resolution, error) {
	principal, err := s.provider.ParseToken(ctx, token)
	if err != nil {
		return nil, auth.Resolution{}, err
	}

	resolution, err := s.resolver.Resolve(ctx, principal.UID)
	if err != nil {
		return nil, auth.Resolution{}, fmt.Errorf("failed to resolve role for %s: %w", principal.UID, err)
	}

	return principal, resolution, nil
}
