// Package domain defines authentication and authorization domain models.
//
// It provides JWT-based authentication with role-based authorization. Every
// registered user carries exactly one role; the role is mapped 1:1 to an
// authority string embedded in tokens and checked by the authorization rules.
package domain

// Role identifies the single role assigned to a user.
type Role string

const (
	// RoleAdmin has full administrative access.
	RoleAdmin Role = "ADMIN"

	// RoleChefDeProject manages tasks and reads project data.
	RoleChefDeProject Role = "CHEF_DE_PROJECT"

	// RoleMembreEquipe works on assigned tasks; the default role granted on
	// public self-registration.
	RoleMembreEquipe Role = "MEMBRE_EQUIPE"
)

// authorityPrefix is prepended to role names to form authority strings.
const authorityPrefix = "ROLE_"

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleChefDeProject, RoleMembreEquipe:
		return true
	}
	return false
}

// Authority returns the authority string derived from the role (e.g., "ROLE_ADMIN").
func (r Role) Authority() string {
	return authorityPrefix + string(r)
}

// Authorities returns the authority snapshot embedded in tokens for this role.
// Roles map 1:1 to authorities; the slice form matches the token claim shape.
func (r Role) Authorities() []string {
	return []string{r.Authority()}
}
