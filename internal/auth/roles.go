package auth

// Role is a permission tag carried in session claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RolesFor derives the role set from the account's admin flag.
func RolesFor(isAdmin bool) []Role {
	if isAdmin {
		return []Role{RoleAdmin}
	}
	return []Role{RoleUser}
}

// HasAnyRole reports whether the role sets intersect. An empty required set
// means no role restriction.
func HasAnyRole(roles []Role, required ...Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, need := range required {
		for _, have := range roles {
			if have == need {
				return true
			}
		}
	}
	return false
}
