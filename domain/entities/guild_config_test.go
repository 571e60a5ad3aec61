package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuildConfig_MissingRoles(t *testing.T) {
	editor, designer, overseer := int64(1), int64(2), int64(3)

	tests := []struct {
		name   string
		config GuildConfig
		want   []string
	}{
		{"nothing set", GuildConfig{}, []string{"Editor", "Designer", "Overseer"}},
		{"only overseer missing", GuildConfig{EditorRoleID: &editor, DesignerRoleID: &designer}, []string{"Overseer"}},
		{"all set", GuildConfig{EditorRoleID: &editor, DesignerRoleID: &designer, OverseerRoleID: &overseer}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.MissingRoles())
		})
	}
}

func TestGuildConfig_KindForRole(t *testing.T) {
	config := &GuildConfig{}
	config.SetRole(StaffKindDesigner, ptr(int64(22)))
	config.SetRole(StaffKindOverseer, ptr(int64(33)))

	kind, ok := config.KindForRole(22)
	assert.True(t, ok)
	assert.Equal(t, StaffKindDesigner, kind)

	_, ok = config.KindForRole(11)
	assert.False(t, ok)
	assert.Nil(t, config.RoleIDFor(StaffKindEditor))
}

func ptr[T any](v T) *T {
	return &v
}
