package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"exact match", "/auth/login", "/auth/login", true},
		{"exact mismatch", "/auth/login", "/auth/logout", false},
		{"placeholder matches one segment", "/projets/{id}/delete", "/projets/123/delete", true},
		{"placeholder rejects empty segment", "/projets/{id}/delete", "/projets//delete", false},
		{"placeholder rejects extra segments", "/projets/{id}/delete", "/projets/1/2/delete", false},
		{"two placeholders", "/projets/{id}/assigner/{utilisateurId}", "/projets/1/assigner/2", true},
		{"wildcard matches nested path", "/utilisateurs/admin/**", "/utilisateurs/admin/1/role", true},
		{"wildcard matches single segment", "/utilisateurs/admin/**", "/utilisateurs/admin/create", true},
		{"wildcard rejects bare prefix", "/utilisateurs/admin/**", "/utilisateurs/admin", false},
		{"wildcard rejects other prefix", "/utilisateurs/admin/**", "/utilisateurs/all", false},
		{"case sensitive", "/auth/login", "/Auth/Login", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path))
		})
	}
}

func TestRuleMatches(t *testing.T) {
	rule := Rule{Methods: []string{"GET", "POST"}, Pattern: "/projets/all"}

	assert.True(t, rule.Matches("GET", "/projets/all"))
	assert.True(t, rule.Matches("POST", "/projets/all"))
	assert.False(t, rule.Matches("DELETE", "/projets/all"))

	// Empty method set matches any method
	anyMethod := Rule{Pattern: "/auth/login"}
	assert.True(t, anyMethod.Matches("PATCH", "/auth/login"))
}

func TestDecisionAllows(t *testing.T) {
	assert.True(t, Decision{Public: true}.Allows(RoleMembreEquipe))
	assert.True(t, Decision{}.Allows(RoleMembreEquipe), "empty role set admits any authenticated role")
	assert.True(t, Decision{Roles: []Role{RoleAdmin}}.Allows(RoleAdmin))
	assert.False(t, Decision{Roles: []Role{RoleAdmin}}.Allows(RoleChefDeProject))
}

func TestRulesEvaluateFirstMatchWins(t *testing.T) {
	rules := Rules{
		{Methods: []string{"GET"}, Pattern: "/things/special", Roles: []Role{RoleAdmin}},
		{Methods: []string{"GET"}, Pattern: "/things/{id}", Roles: []Role{RoleMembreEquipe}},
	}

	// The specific entry declared first governs even though the placeholder
	// entry also matches structurally.
	decision := rules.Evaluate("GET", "/things/special")
	assert.Equal(t, []Role{RoleAdmin}, decision.Roles)

	decision = rules.Evaluate("GET", "/things/42")
	assert.Equal(t, []Role{RoleMembreEquipe}, decision.Roles)
}

func TestRulesEvaluateNoMatchDefaultsToAuthenticated(t *testing.T) {
	rules := Rules{
		{Pattern: "/auth/login", Public: true},
	}

	decision := rules.Evaluate("GET", "/uncovered/path")
	assert.False(t, decision.Public)
	assert.Empty(t, decision.Roles)
	assert.True(t, decision.Allows(RoleMembreEquipe))
}

func TestDefaultRulesPublicEndpoints(t *testing.T) {
	rules := DefaultRules()

	for _, path := range []string{
		"/health",
		"/ready",
		"/auth/login",
		"/auth/register",
		"/auth/refresh",
		"/auth/validate",
		"/auth/check-email",
		"/auth/logout",
	} {
		decision := rules.Evaluate("POST", path)
		assert.True(t, decision.Public, "expected %s to be public", path)
	}

	decision := rules.Evaluate("GET", "/auth/profile")
	assert.False(t, decision.Public)
	assert.True(t, decision.Allows(RoleMembreEquipe))
}

func TestDefaultRulesProjets(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		method string
		path   string
		role   Role
		want   bool
	}{
		{"POST", "/projets/add", RoleAdmin, true},
		{"POST", "/projets/add", RoleChefDeProject, false},
		{"GET", "/projets/all", RoleAdmin, true},
		{"GET", "/projets/all", RoleMembreEquipe, false},
		{"DELETE", "/projets/1/delete", RoleAdmin, true},
		{"DELETE", "/projets/1/delete", RoleChefDeProject, false},
		{"POST", "/projets/1/assigner/2", RoleAdmin, true},
		{"POST", "/projets/1/assigner/2", RoleChefDeProject, false},
		{"PUT", "/projets/1/statut", RoleChefDeProject, true},
		{"PUT", "/projets/1/statut", RoleMembreEquipe, false},
		{"GET", "/projets/1/statistiques", RoleChefDeProject, true},
		{"GET", "/projets/1/statistiques", RoleMembreEquipe, false},
		{"GET", "/projets/1/projet", RoleMembreEquipe, true},
		{"GET", "/projets/1/participants", RoleMembreEquipe, true},
		{"GET", "/projets/mes-projets", RoleMembreEquipe, true},
		{"GET", "/projets/mes-projets", RoleChefDeProject, true},
		{"GET", "/projets/mes-projets", RoleAdmin, false},
		{"GET", "/projets/sans-participants", RoleAdmin, true},
		{"GET", "/projets/sans-participants", RoleChefDeProject, false},
	}

	for _, tt := range tests {
		decision := rules.Evaluate(tt.method, tt.path)
		assert.False(t, decision.Public, "%s %s must not be public", tt.method, tt.path)
		assert.Equal(t, tt.want, decision.Allows(tt.role),
			"%s %s as %s", tt.method, tt.path, tt.role)
	}
}

func TestDefaultRulesTaches(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		method string
		path   string
		role   Role
		want   bool
	}{
		{"POST", "/taches/add", RoleChefDeProject, true},
		{"POST", "/taches/add", RoleAdmin, false},
		{"PUT", "/taches/1/update", RoleChefDeProject, true},
		{"PUT", "/taches/1/update", RoleMembreEquipe, false},
		{"PUT", "/taches/1/update-statut", RoleMembreEquipe, true},
		{"PUT", "/taches/1/update-statut", RoleChefDeProject, false},
		{"DELETE", "/taches/1/delete", RoleChefDeProject, true},
		{"GET", "/taches/all", RoleChefDeProject, true},
		{"GET", "/taches/all", RoleMembreEquipe, false},
		{"GET", "/taches/mes-taches", RoleMembreEquipe, true},
		{"GET", "/taches/mes-taches", RoleChefDeProject, false},
		{"GET", "/taches/statut", RoleChefDeProject, true},
		{"GET", "/taches/statut", RoleMembreEquipe, true},
		{"GET", "/taches/statut", RoleAdmin, false},
		{"GET", "/taches/utilisateur/1", RoleChefDeProject, true},
		{"GET", "/taches/utilisateur/1/statut", RoleChefDeProject, true},
		{"GET", "/taches/projet/1", RoleChefDeProject, true},
	}

	for _, tt := range tests {
		decision := rules.Evaluate(tt.method, tt.path)
		assert.Equal(t, tt.want, decision.Allows(tt.role),
			"%s %s as %s", tt.method, tt.path, tt.role)
	}
}

func TestDefaultRulesUtilisateurs(t *testing.T) {
	rules := DefaultRules()

	// Personal profile endpoints admit every role and must not be captured by
	// the admin-only id lookup declared later.
	for _, role := range []Role{RoleAdmin, RoleChefDeProject, RoleMembreEquipe} {
		assert.True(t, rules.Evaluate("GET", "/utilisateurs/mon-profil").Allows(role))
		assert.True(t, rules.Evaluate("PUT", "/utilisateurs/mon-profil").Allows(role))
		assert.True(t, rules.Evaluate("PUT", "/utilisateurs/mon-profil/mot-de-passe").Allows(role))
	}

	tests := []struct {
		method string
		path   string
		role   Role
		want   bool
	}{
		{"POST", "/utilisateurs/admin/create", RoleAdmin, true},
		{"POST", "/utilisateurs/admin/create", RoleChefDeProject, false},
		{"PUT", "/utilisateurs/admin/1/role", RoleAdmin, true},
		{"PUT", "/utilisateurs/admin/1/role", RoleMembreEquipe, false},
		{"PUT", "/utilisateurs/admin/1", RoleAdmin, true},
		{"PUT", "/utilisateurs/admin/1", RoleChefDeProject, false},
		{"GET", "/utilisateurs/all", RoleAdmin, true},
		{"GET", "/utilisateurs/all", RoleChefDeProject, false},
		{"GET", "/utilisateurs/email", RoleAdmin, true},
		{"GET", "/utilisateurs/nom", RoleAdmin, true},
		{"GET", "/utilisateurs/role", RoleAdmin, true},
		{"GET", "/utilisateurs/count", RoleAdmin, true},
		{"GET", "/utilisateurs/42", RoleAdmin, true},
		{"GET", "/utilisateurs/42", RoleMembreEquipe, false},
		{"DELETE", "/utilisateurs/42", RoleAdmin, true},
		{"DELETE", "/utilisateurs/42", RoleChefDeProject, false},
	}

	for _, tt := range tests {
		decision := rules.Evaluate(tt.method, tt.path)
		assert.Equal(t, tt.want, decision.Allows(tt.role),
			"%s %s as %s", tt.method, tt.path, tt.role)
	}
}

func TestRoleAuthorities(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", RoleAdmin.Authority())
	assert.Equal(t, []string{"ROLE_MEMBRE_EQUIPE"}, RoleMembreEquipe.Authorities())

	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleChefDeProject.IsValid())
	assert.True(t, RoleMembreEquipe.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
	assert.False(t, Role("").IsValid())
}
