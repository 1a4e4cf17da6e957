package domain

import (
	"slices"
	"strings"
)

// Rule is a single declarative authorization entry: an HTTP method set, a path
// pattern and either "public" or the set of roles allowed through.
//
// Patterns support two placeholder forms:
//  1. "{name}" matches exactly one path segment ("/projets/{id}/delete")
//  2. a trailing "/**" matches any remaining path ("/utilisateurs/admin/**")
type Rule struct {
	Methods []string // HTTP methods the rule applies to; empty matches any method
	Pattern string   // Path pattern
	Public  bool     // No authentication required
	Roles   []Role   // Permitted roles (ANY-of); empty with Public=false means any authenticated user
}

// Decision is the outcome of evaluating the rule table for a request.
type Decision struct {
	Public bool
	Roles  []Role // nil means any authenticated identity is acceptable
}

// Allows reports whether the given role satisfies the decision.
// A non-public decision with no roles admits any authenticated identity.
func (d Decision) Allows(role Role) bool {
	if d.Public || len(d.Roles) == 0 {
		return true
	}
	return slices.Contains(d.Roles, role)
}

// Matches reports whether the rule structurally matches the method and path.
func (r Rule) Matches(method, path string) bool {
	if len(r.Methods) > 0 && !slices.Contains(r.Methods, method) {
		return false
	}
	return matchPattern(r.Pattern, path)
}

// Allows reports whether the given role is permitted by the rule.
// A non-public rule with no roles admits any authenticated identity.
func (r Rule) Allows(role Role) bool {
	if r.Public || len(r.Roles) == 0 {
		return true
	}
	return slices.Contains(r.Roles, role)
}

// matchPattern checks a request path against a rule pattern. "{name}"
// placeholders match a single non-empty segment; a trailing "/**" matches any
// remaining path including nested segments. Matching is case-sensitive.
func matchPattern(pattern, path string) bool {
	if suffix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return strings.HasPrefix(path, suffix+"/")
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}

	return true
}

// Rules is an ordered rule table. Evaluation is strictly top-down and the
// first structural match governs, so more specific entries must be declared
// before more general ones covering the same path prefix.
type Rules []Rule

// Evaluate returns the authorization decision for a request. When no entry
// matches, the default decision applies: any authenticated identity.
func (rs Rules) Evaluate(method, path string) Decision {
	for _, rule := range rs {
		if rule.Matches(method, path) {
			return Decision{Public: rule.Public, Roles: rule.Roles}
		}
	}
	return Decision{}
}

// DefaultRules returns the authorization policy for the API.
//
// Order matters: personal-profile entries precede the admin "{id}" lookups
// they would otherwise be swallowed by.
func DefaultRules() Rules {
	anyRole := []Role{RoleAdmin, RoleChefDeProject, RoleMembreEquipe}
	adminOnly := []Role{RoleAdmin}
	chefOnly := []Role{RoleChefDeProject}
	membreOnly := []Role{RoleMembreEquipe}

	return Rules{
		// Liveness and readiness probes
		{Pattern: "/health", Public: true},
		{Pattern: "/ready", Public: true},

		// Public auth endpoints
		{Pattern: "/auth/login", Public: true},
		{Pattern: "/auth/register", Public: true},
		{Pattern: "/auth/refresh", Public: true},
		{Pattern: "/auth/validate", Public: true},
		{Pattern: "/auth/check-email", Public: true},
		{Pattern: "/auth/logout", Public: true},

		// Profile endpoint reads the caller identity: authentication required.
		{Pattern: "/auth/profile", Roles: anyRole},

		// Projets
		{Methods: []string{"POST"}, Pattern: "/projets/add", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/projets/all", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/projets/search", Roles: adminOnly},
		{Methods: []string{"DELETE"}, Pattern: "/projets/{id}/delete", Roles: adminOnly},
		{Methods: []string{"POST", "DELETE"}, Pattern: "/projets/{id}/assigner/{utilisateurId}", Roles: adminOnly},
		{Methods: []string{"POST", "DELETE"}, Pattern: "/projets/{id}/retirer/{utilisateurId}", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/projets/sans-participants", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/projets/{id}/statistiques", Roles: []Role{RoleAdmin, RoleChefDeProject}},
		{Methods: []string{"PUT"}, Pattern: "/projets/{id}/statut", Roles: []Role{RoleAdmin, RoleChefDeProject}},
		{Methods: []string{"GET"}, Pattern: "/projets/statut", Roles: anyRole},
		{Methods: []string{"GET"}, Pattern: "/projets/{id}/projet", Roles: anyRole},
		{Methods: []string{"GET"}, Pattern: "/projets/{id}/participants", Roles: anyRole},
		{Methods: []string{"GET"}, Pattern: "/projets/mes-projets", Roles: []Role{RoleChefDeProject, RoleMembreEquipe}},

		// Taches
		{Methods: []string{"POST"}, Pattern: "/taches/add", Roles: chefOnly},
		{Methods: []string{"PUT"}, Pattern: "/taches/{id}/update", Roles: chefOnly},
		{Methods: []string{"DELETE"}, Pattern: "/taches/{id}/delete", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/all", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/{id}/tache", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/utilisateur/{id}", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/projet/{id}", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/utilisateur/{id}/statut", Roles: chefOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/mes-taches", Roles: membreOnly},
		{Methods: []string{"PUT"}, Pattern: "/taches/{id}/update-statut", Roles: membreOnly},
		{Methods: []string{"GET"}, Pattern: "/taches/statut", Roles: []Role{RoleChefDeProject, RoleMembreEquipe}},

		// Utilisateurs: personal profile before admin lookups on the same prefix
		{Pattern: "/utilisateurs/mon-profil", Roles: anyRole},
		{Pattern: "/utilisateurs/mon-profil/mot-de-passe", Roles: anyRole},
		{Pattern: "/utilisateurs/admin/**", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/all", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/email", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/nom", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/role", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/count", Roles: adminOnly},
		{Methods: []string{"GET"}, Pattern: "/utilisateurs/{id}", Roles: adminOnly},
		{Methods: []string{"DELETE"}, Pattern: "/utilisateurs/{id}", Roles: adminOnly},
	}
}
