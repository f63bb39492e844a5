package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

func TestGroupsMapper_Map(t *testing.T) {
	tests := []struct {
		name       string
		adminGroup string
		groups     []string
		want       domainauth.Role
	}{
		{"admin among groups", "", []string{"admin", "editor"}, domainauth.RoleAdmin},
		{"no admin group", "", []string{"editor", "viewer"}, domainauth.RoleVoter},
		{"empty groups", "", nil, domainauth.RoleVoter},
		{"exact match only", "", []string{"administrators"}, domainauth.RoleVoter},
		{"custom admin group", "poll-admins", []string{"poll-admins"}, domainauth.RoleAdmin},
		{"custom group ignores default", "poll-admins", []string{"admin"}, domainauth.RoleVoter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &GroupsMapper{AdminGroup: tt.adminGroup}
			assert.Equal(t, tt.want, m.Map(tt.groups))
		})
	}
}

// Mapping the same groups twice yields the same role.
func TestGroupsMapper_Idempotent(t *testing.T) {
	m := &GroupsMapper{}
	groups := []string{"admin", "editor"}
	first := m.Map(groups)
	assert.Equal(t, first, m.Map(groups))
}
