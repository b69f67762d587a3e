package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/pixalara/placement-service/internal/config"
)

// CasdoorProvider implements Provider against a Casdoor instance. Sign-in
// uses the OAuth2 resource-owner password grant against Casdoor's token
// endpoint; token verification uses the application certificate via the
// Casdoor SDK.
type CasdoorProvider struct {
	client *casdoorsdk.Client
	oauth  *oauth2.Config
	config config.CasdoorConfig
}

// NewCasdoorProvider creates a provider for the configured Casdoor
// organization and application.
func NewCasdoorProvider(cfg config.CasdoorConfig) *CasdoorProvider {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: strings.TrimRight(cfg.Endpoint, "/") + "/api/login/oauth/access_token",
		},
	}

	return &CasdoorProvider{
		client: client,
		oauth:  oauthConfig,
		config: cfg,
	}
}

// SignIn exchanges email/password for an access token via the password
// grant, then verifies the returned token locally.
func (p *CasdoorProvider) SignIn(ctx context.Context, email, password string) (string, *Principal, error) {
	token, err := p.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		// Casdoor rejects bad credentials with an OAuth error response;
		// surface it uniformly so handlers never leak provider details.
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	principal, err := p.ParseToken(ctx, token.AccessToken)
	if err != nil {
		return "", nil, err
	}

	return token.AccessToken, principal, nil
}

// ParseToken verifies the JWT and extracts the principal from its claims.
func (p *CasdoorProvider) ParseToken(_ context.Context, token string) (*Principal, error) {
	claims, err := p.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid := claims.User.Id
	if uid == "" {
		uid = claims.Id
	}
	if uid == "" {
		return nil, fmt.Errorf("%w: missing user id in claims", ErrInvalidToken)
	}

	return &Principal{
		UID:         uid,
		Email:       claims.User.Email,
		DisplayName: claims.User.DisplayName,
		AvatarURL:   claims.User.Avatar,
	}, nil
}

// CreateUser provisions an account in the configured organization and
// returns the generated uid. The uid is assigned client-side so callers
// can write the matching role record without a follow-up lookup.
func (p *CasdoorProvider) CreateUser(_ context.Context, email, password, displayName string) (string, error) {
	uid := uuid.NewString()

	user := &casdoorsdk.User{
		Owner:       p.config.Organization,
		Id:          uid,
		Name:        email,
		DisplayName: displayName,
		Email:       email,
		Password:    password,
	}

	ok, err := p.client.AddUser(user)
	if err != nil {
		return "", fmt.Errorf("failed to create user in Casdoor: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("casdoor rejected user creation for %s", email)
	}

	return uid, nil
}

// DeleteUser removes the account identified by uid.
func (p *CasdoorProvider) DeleteUser(_ context.Context, uid string) error {
	user, err := p.client.GetUserByUserId(uid)
	if err != nil {
		return fmt.Errorf("failed to look up user in Casdoor: %w", err)
	}
	if user == nil {
		// Already gone; deletion is idempotent.
		return nil
	}

	ok, err := p.client.DeleteUser(user)
	if err != nil {
		return fmt.Errorf("failed to delete user from Casdoor: %w", err)
	}
	if !ok {
		return fmt.Errorf("casdoor rejected user deletion for %s", uid)
	}

	return nil
}
