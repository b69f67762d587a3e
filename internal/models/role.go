package models

// Role classifies an authenticated principal into exactly one application role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStudent   Role = "student"
	RoleJobSeeker Role = "job_seeker"
	RoleMentor    Role = "mentor"

	// RoleUnassigned is a valid terminal classification, not an error:
	// the principal authenticated but has no profile in any role store.
	RoleUnassigned Role = "unassigned"
)

// ResolutionOrder is the fixed priority order used to classify a principal.
// Resolution short-circuits on the first store that contains the uid.
var ResolutionOrder = []Role{RoleAdmin, RoleStudent, RoleJobSeeker, RoleMentor}

// Valid reports whether r is one of the four assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleJobSeeker, RoleMentor:
		return true
	}
	return false
}

// CollectionName returns the role store backing a role.
func (r Role) CollectionName() string {
	switch r {
	case RoleAdmin:
		return "admins"
	case RoleStudent:
		return "growth_students"
	case RoleJobSeeker:
		return "job_seekers"
	case RoleMentor:
		return "mentors"
	}
	return ""
}
