package domain

// Role is the authorization tier associated with an account. Roles live in
// a separate user_roles table, one row per account.
type Role string

const (
	RoleBasic   Role = "basic"
	RoleDevotee Role = "devotee"
	RoleAdmin   Role = "admin"
)

// Rank orders roles by privilege. Unknown roles rank below basic so a
// corrupt row never grants access.
func (r Role) Rank() int {
	switch r {
	case RoleBasic:
		return 1
	case RoleDevotee:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return r == RoleBasic || r == RoleDevotee || r == RoleAdmin
}

// Elevated reports whether the role may enter devotee-gated views.
// Admin implies devotee access.
func (r Role) Elevated() bool {
	return r.Rank() >= RoleDevotee.Rank()
}
