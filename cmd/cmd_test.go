package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"thumbnailbot/bot"
	"thumbnailbot/database"
	"thumbnailbot/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"run"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"export"},
		{"debug", "guilds"},
		{"debug", "sync"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	for _, bad := range []string{"0", "-2", "all"} {
		_, err := parseSteps([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFormatMigrationStatus(t *testing.T) {
	assert.Equal(t, "No migrations applied", FormatMigrationStatus(&database.MigrationStatus{}))
	assert.Equal(t, "Version 4", FormatMigrationStatus(&database.MigrationStatus{Version: 4, Applied: true}))
	assert.Contains(t, FormatMigrationStatus(&database.MigrationStatus{Version: 4, Dirty: true, Applied: true}), "dirty")
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	file := &interfaces.ExportFile{
		Filename: "thumbnails_March_2026.csv",
		Data:     []byte("creator,url\n"),
		Rows:     0,
	}

	path, err := writeExport(dir, file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thumbnails_March_2026.csv"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, file.Data, written)
}

func TestPrintGuilds(t *testing.T) {
	var out bytes.Buffer
	PrintGuilds(&out, nil)
	assert.Equal(t, "Not connected to any guild\n", out.String())

	out.Reset()
	PrintGuilds(&out, []bot.GuildInfo{
		{ID: "1", Name: "Studio", Configured: true},
		{ID: "2", Name: "Fresh"},
		{ID: "3", Name: "Half", Configured: true, MissingRoles: []string{"Designer", "Overseer"}},
	})
	assert.Equal(t,
		"1  Studio  (ready)\n"+
			"2  Fresh  (not configured)\n"+
			"3  Half  (missing Designer, Overseer)\n",
		out.String())
}
