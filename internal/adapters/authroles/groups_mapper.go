// Package authroles maps identity provider groups to application roles.
package authroles

import (
	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
)

// GroupsMapper derives a role from group membership: members of AdminGroup
// are admins, everyone else is a voter. Matching is exact.
type GroupsMapper struct {
	// AdminGroup is the group granting the admin role (default "admin")
	AdminGroup string
}

var _ ports.RoleMapper = (*GroupsMapper)(nil)

// Map returns RoleAdmin when groups contain the admin group, RoleVoter otherwise.
func (m *GroupsMapper) Map(groups []string) domainauth.Role {
	adminGroup := m.AdminGroup
	if adminGroup == "" {
		adminGroup = "admin"
	}
	for _, g := range groups {
		if g == adminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleVoter
}
