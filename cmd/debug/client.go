package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"thumbnailbot/application"
	"thumbnailbot/bot"
)

// DebugClient provides access to the bot's debug API
type DebugClient struct {
	baseURL string
	client  *http.Client
}

// NewDebugClient creates a new debug API client
func NewDebugClient(port int) *DebugClient {
	return NewDebugClientWithURL(fmt.Sprintf("http://127.0.0.1:%d", port))
}

// NewDebugClientWithURL creates a client for a debug API at an explicit address
func NewDebugClientWithURL(baseURL string) *DebugClient {
	return &DebugClient{
		baseURL: baseURL,
		client: &http.Client{
			// A roster sync pages through every member of the guild
			Timeout: 2 * time.Minute,
		},
	}
}

// CheckConnection verifies the debug API is accessible
func (c *DebugClient) CheckConnection() error {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("debug API not accessible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("debug API returned status %d", resp.StatusCode)
	}

	return nil
}

// GetGuilds fetches the guilds the bot is connected to
func (c *DebugClient) GetGuilds() ([]bot.GuildInfo, error) {
	resp, err := c.client.Get(c.baseURL + "/debug/guilds")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guilds: %w", err)
	}
	defer resp.Body.Close()

	var guilds []bot.GuildInfo
	if err := decodeResponse(resp.Body, &guilds); err != nil {
		return nil, fmt.Errorf("failed to get guilds: %w", err)
	}
	return guilds, nil
}

// SyncGuild asks the bot to sync the staff rosters of a guild
func (c *DebugClient) SyncGuild(guildID int64) (*application.SyncSummary, error) {
	cmd := bot.DebugCommand{
		Action: "sync",
		Params: map[string]string{
			"guild_id": strconv.FormatInt(guildID, 10),
		},
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/debug/command", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var summary application.SyncSummary
	if err := decodeResponse(resp.Body, &summary); err != nil {
		return nil, fmt.Errorf("failed to sync guild %d: %w", guildID, err)
	}
	return &summary, nil
}

// decodeResponse unwraps a debug API envelope into data
func decodeResponse(body io.Reader, data any) error {
	respBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var debugResp struct {
		Success bool            `json:"success"`
		Error   string          `json:"error,omitempty"`
		Data    json.RawMessage `json:"data,omitempty"`
	}
	if err := json.Unmarshal(respBody, &debugResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !debugResp.Success {
		return fmt.Errorf("%s", debugResp.Error)
	}
	if len(debugResp.Data) == 0 {
		return nil
	}
	return json.Unmarshal(debugResp.Data, data)
}
