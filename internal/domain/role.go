package domain

import "fmt"

// Role is the closed set of user roles known to the agency.
// The backend transmits roles as strings; ParseRole is the only way a
// value outside this set enters the system, and it refuses them.
type Role string

const (
	RoleCustomer  Role = "Customer"
	RoleDeliverer Role = "Deliverer"
	RoleManager   Role = "Manager"
)

// Roles lists every known role, in a stable order.
var Roles = []Role{RoleCustomer, RoleDeliverer, RoleManager}

// ParseRole converts a backend role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleDeliverer:
		return RoleDeliverer, nil
	case RoleManager:
		return RoleManager, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDeliverer, RoleManager:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
