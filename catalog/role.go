package catalog

// Role is the closed set of caller roles the catalog distinguishes.
type Role string

const (
	RoleAnonymous  Role = ""
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a claim string to a Role. Anything unrecognized is treated
// as anonymous, the least privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s)
	default:
		return RoleAnonymous
	}
}

// SeesUnpublished reports whether the role may discover unpublished courses.
func (r Role) SeesUnpublished() bool {
	switch r {
	case RoleAdmin, RoleInstructor:
		return true
	case RoleStudent, RoleAnonymous:
		return false
	default:
		return false
	}
}
