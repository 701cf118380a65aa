package authorization

// UserRole is the account's privilege level. The tracker knows exactly
// two levels: admins run the desk, users file tickets.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// ParseUserRole maps a stored role string to a UserRole. Unknown values
// fall back to the least-privileged role.
func ParseUserRole(s string) UserRole {
	if role := UserRole(s); role.IsValid() {
		return role
	}
	return RoleUser
}
