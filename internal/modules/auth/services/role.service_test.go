package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cetime-core/internal/app/config"
)

func newTestResolver() *RoleResolver {
	cfg := &config.Config{
		Roles: config.RolesConfig{
			AdminAliases:  []string{"admin", "administrateur"},
			AgentAliases:  []string{"agent", "employee", "employé"},
			ClientAliases: []string{"client", "portal"},
		},
	}
	return NewRoleResolver(cfg)
}

func TestRoleResolver_Resolve(t *testing.T) {
	resolver := newTestResolver()

	tests := []struct {
		name   string
		groups []string
		want   string
	}{
		{"groupe admin", []string{"Administrateur"}, RoleAdmin},
		{"groupe agent", []string{"Agent CETIME"}, RoleAgent},
		{"groupe client", []string{"Client"}, RoleClient},
		{"insensible à la casse", []string{"ADMIN / Settings"}, RoleAdmin},
		{"admin prioritaire sur agent", []string{"Agent", "Administrateur"}, RoleAdmin},
		{"agent prioritaire sur client", []string{"Client", "Employee"}, RoleAgent},
		{"aucun groupe", nil, RoleClient},
		{"groupe inconnu", []string{"Comptabilité"}, RoleClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.groups))
		})
	}
}

func TestRoleResolver_AliasesForRole(t *testing.T) {
	resolver := newTestResolver()

	assert.Equal(t, []string{"admin", "administrateur"}, resolver.AliasesForRole("ADMIN"))
	assert.Equal(t, []string{"agent", "employee", "employé"}, resolver.AliasesForRole("agent"))

	// EMPLOYEE est un alias historique du rôle agent
	assert.Equal(t, resolver.AliasesForRole("agent"), resolver.AliasesForRole("EMPLOYEE"))

	// Tout le reste retombe sur client
	assert.Equal(t, []string{"client", "portal"}, resolver.AliasesForRole("CLIENT"))
	assert.Equal(t, []string{"client", "portal"}, resolver.AliasesForRole("inconnu"))
}
