package auth

// Principal is the authenticated identity as reported by the identity
// provider. It carries no role: roles live in the portal's own role
// stores and are attached during resolution.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
