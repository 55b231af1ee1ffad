package domain

import "fmt"

// Role is the authorization tag attached to an authenticated user. It is
// compared by equality against a view's requirement.
type Role string

const (
	RoleIndividual Role = "INDIVIDUAL"
	RoleIndustrial Role = "INDUSTRIAL"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether the role belongs to the known set.
func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleIndustrial, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts raw input into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}
