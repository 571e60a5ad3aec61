package debug

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"thumbnailbot/application"
	"thumbnailbot/bot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	guilds  []bot.GuildInfo
	summary *application.SyncSummary
	err     error
	synced  int64
}

func (f *fakeBackend) ConnectedGuilds(ctx context.Context) []bot.GuildInfo {
	return f.guilds
}

func (f *fakeBackend) SyncGuildRoster(ctx context.Context, guildID int64) (*application.SyncSummary, error) {
	f.synced = guildID
	return f.summary, f.err
}

func newTestClient(t *testing.T, backend *fakeBackend) *DebugClient {
	t.Helper()
	server := httptest.NewServer(bot.NewDebugHandler(backend))
	t.Cleanup(server.Close)
	return NewDebugClientWithURL(server.URL)
}

func TestDebugClient_CheckConnection(t *testing.T) {
	client := newTestClient(t, &fakeBackend{})
	assert.NoError(t, client.CheckConnection())

	unreachable := NewDebugClientWithURL("http://127.0.0.1:1")
	assert.Error(t, unreachable.CheckConnection())
}

func TestDebugClient_GetGuilds(t *testing.T) {
	backend := &fakeBackend{
		guilds: []bot.GuildInfo{
			{ID: "1", Name: "Studio", Configured: true},
			{ID: "2", Name: "Fresh", MissingRoles: []string{"Editor", "Designer"}},
		},
	}
	client := newTestClient(t, backend)

	guilds, err := client.GetGuilds()
	require.NoError(t, err)
	assert.Equal(t, backend.guilds, guilds)
}

func TestDebugClient_SyncGuild(t *testing.T) {
	backend := &fakeBackend{
		summary: &application.SyncSummary{MembersScanned: 12, Created: 2, Reactivated: 1},
	}
	client := newTestClient(t, backend)

	summary, err := client.SyncGuild(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), backend.synced)
	assert.Equal(t, backend.summary, summary)
}

func TestDebugClient_SyncGuildFailure(t *testing.T) {
	client := newTestClient(t, &fakeBackend{err: errors.New("missing access")})

	_, err := client.SyncGuild(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing access")
}
