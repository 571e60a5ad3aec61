package bot

import (
	"testing"

	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) *discordgo.ApplicationCommand {
	t.Helper()
	for _, cmd := range Commands() {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %s not registered", name)
	return nil
}

func subcommandNames(cmd *discordgo.ApplicationCommand) []string {
	names := make([]string, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		names = append(names, opt.Name)
	}
	return names
}

func TestCommands_Subcommands(t *testing.T) {
	tests := map[string][]string{
		"thumbnail": {"request", "panel", "repost", "list"},
		"role":      {"set-editor", "set-designer", "set-overseer", "list-config"},
		"category":  {"add", "remove", "list", "set-channel", "toggle-single-channel", "set-single-channel"},
		"creator":   {"add", "remove", "list"},
		"staff":     {"add", "remove", "list", "sync", "assign-editor", "unassign-editor", "editor-assignments", "creator-assignments"},
		"export":    {"current-month", "month"},
	}

	require.Len(t, Commands(), len(tests))
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, subcommandNames(findCommand(t, name)))
		})
	}
}

func TestCommands_AdminOnly(t *testing.T) {
	for _, name := range []string{"role", "category", "creator", "staff", "export"} {
		cmd := findCommand(t, name)
		require.NotNil(t, cmd.DefaultMemberPermissions, name)
		assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions, name)
	}

	// Editors and designers use /thumbnail
	assert.Nil(t, findCommand(t, "thumbnail").DefaultMemberPermissions)
}

func findOption(t *testing.T, options []*discordgo.ApplicationCommandOption, path ...string) *discordgo.ApplicationCommandOption {
	t.Helper()
	for _, opt := range options {
		if opt.Name != path[0] {
			continue
		}
		if len(path) == 1 {
			return opt
		}
		return findOption(t, opt.Options, path[1:]...)
	}
	t.Fatalf("option %v not found", path)
	return nil
}

func TestCommands_TextOptionLimits(t *testing.T) {
	tests := []struct {
		command string
		path    []string
		max     int
	}{
		{"thumbnail", []string{"request", "url"}, services.MaxSourceURLLength},
		{"thumbnail", []string{"request", "creator"}, services.MaxNameLength},
		{"thumbnail", []string{"request", "category"}, services.MaxNameLength},
		{"category", []string{"add", "name"}, services.MaxNameLength},
		{"category", []string{"set-channel", "category"}, services.MaxNameLength},
		{"creator", []string{"add", "name"}, services.MaxNameLength},
		{"creator", []string{"remove", "name"}, services.MaxNameLength},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.path[0]+"/"+tt.path[1], func(t *testing.T) {
			opt := findOption(t, findCommand(t, tt.command).Options, tt.path...)
			assert.Equal(t, tt.max, opt.MaxLength)
		})
	}
}

func TestCommands_StaffKindChoices(t *testing.T) {
	choices := staffKindChoices()
	require.Len(t, choices, 3)
	assert.Equal(t, "editor", choices[0].Value)
	assert.Equal(t, "Designer", choices[1].Name)
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "claim", componentName("thumbnail_claim_6f1c2a4e-0d7b-4c55-9a51-8e0b0a3f7c11"))
	assert.Equal(t, "thumbnail_panel_request", componentName("thumbnail_panel_request"))
}
