package domain

// Role is the closed set of privilege levels known to both services.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleNormal     Role = "normal"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Roles lists every assignable role. Guest is excluded: it is the implicit
// role of an unauthenticated request and is never stored on a user record.
func Roles() []Role {
	return []Role{RoleNormal, RoleAdmin, RoleSuperAdmin}
}

// ParseRole maps an arbitrary string onto the role enum. Unrecognised values
// resolve to guest, the most restrictive role, so a corrupted role can never
// widen a principal's permissions.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleNormal:
		return RoleNormal
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleGuest
	}
}

// AssignableRole reports whether s names a role that may be stored on a user
// record.
func AssignableRole(s string) bool {
	switch Role(s) {
	case RoleNormal, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Principal is the authenticated identity resolved for a single request.
// Immutable once resolved.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// User models a stored account. TokenHash is the bcrypt hash of the per-user
// login secret; the plaintext secret is returned exactly once at
// registration time and never persisted.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TokenHash string `json:"-"`
}

// Principal returns the request identity this user resolves to.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}
