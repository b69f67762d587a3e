package models

import "time"

// DirectoryUser is an identity-provider account as seen by the portal.
// Role information deliberately lives elsewhere: the directory only says
// who exists, the role stores say what they may do.
type DirectoryUser struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
