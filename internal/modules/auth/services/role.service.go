package services

import (
	"strings"

	"cetime-core/internal/app/config"
)

// Rôles applicatifs
const (
	RoleAdmin  = "ADMIN"
	RoleAgent  = "AGENT"
	RoleClient = "CLIENT"
)

// RoleResolver déduit le rôle applicatif depuis les noms de groupes.
// Correspondance par sous-chaîne insensible à la casse, priorité
// admin > agent > client, client par défaut.
type RoleResolver struct {
	adminAliases  []string
	agentAliases  []string
	clientAliases []string
}

// NewRoleResolver crée un résolveur depuis les alias configurés
func NewRoleResolver(cfg *config.Config) *RoleResolver {
	roles := cfg.GetRoles()
	return &RoleResolver{
		adminAliases:  roles.AdminAliases,
		agentAliases:  roles.AgentAliases,
		clientAliases: roles.ClientAliases,
	}
}

// Resolve retourne ADMIN, AGENT ou CLIENT selon les groupes du compte
func (r *RoleResolver) Resolve(groupNames []string) string {
	names := make([]string, 0, len(groupNames))
	for _, name := range groupNames {
		names = append(names, strings.ToLower(name))
	}

	if matchAny(names, r.adminAliases) {
		return RoleAdmin
	}
	if matchAny(names, r.agentAliases) {
		return RoleAgent
	}
	return RoleClient
}

// AliasesForRole retourne les alias de groupes associés à un rôle demandé.
// EMPLOYEE est un alias historique du rôle agent.
func (r *RoleResolver) AliasesForRole(role string) []string {
	switch strings.ToLower(role) {
	case "admin":
		return r.adminAliases
	case "agent", "employee":
		return r.agentAliases
	default:
		return r.clientAliases
	}
}

func matchAny(names []string, aliases []string) bool {
	for _, alias := range aliases {
		alias = strings.ToLower(alias)
		for _, name := range names {
			if strings.Contains(name, alias) {
				return true
			}
		}
	}
	return false
}
