package model

// User is an account as returned by the backend.
type User struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AssignedBase string `json:"assignedBase,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// UserInput is the payload for creating or updating a user. An empty password
// on update leaves the current password unchanged.
type UserInput struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Role         string `json:"role"`
	AssignedBase string `json:"assignedBase"`
	IsActive     bool   `json:"isActive"`
}

// Roles.
const (
	RoleAdmin            = "Admin"
	RoleBaseCommander    = "Base Commander"
	RoleLogisticsOfficer = "Logistics Officer"
)

// AllRoles lists every known role, most privileged first.
var AllRoles = []string{RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer}

// HasRole reports whether the user's role is exactly role.
func HasRole(u *User, role string) bool {
	return u != nil && u.Role == role
}

// HasAnyRole reports whether the user holds one of roles. An empty list
// places no restriction.
func HasAnyRole(u *User, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if HasRole(u, role) {
			return true
		}
	}
	return false
}

// HasBaseAccess reports whether the user may look at data scoped to baseID.
// Admins see every base and Base Commanders only their assigned one. Every
// other role is unrestricted: logistics personnel work across bases to execute
// transfers, and row-level access is enforced by the backend.
func HasBaseAccess(u *User, baseID string) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleBaseCommander:
		return u.AssignedBase == baseID
	default:
		return true
	}
}

// AccessibleBases filters bases down to the ones the user may select.
// The assigned base is stored by name, so a base matches on either its ID
// or its name.
func AccessibleBases(u *User, bases []Base) []Base {
	var out []Base
	for _, b := range bases {
		if HasBaseAccess(u, b.ID.String()) || HasBaseAccess(u, b.Name) {
			out = append(out, b)
		}
	}
	return out
}
