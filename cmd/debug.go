package cmd

import (
	"fmt"
	"io"
	"strings"

	"thumbnailbot/bot"
	"thumbnailbot/cmd/debug"
	"thumbnailbot/config"

	"github.com/spf13/cobra"
)

func newDebugCommand() *cobra.Command {
	var port int

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Talk to the debug API of a running bot",
	}
	debugCmd.PersistentFlags().IntVar(&port, "port", 0, "Debug API port (default DEBUG_PORT)")

	client := func() (*debug.DebugClient, error) {
		if port == 0 {
			port = config.Get().DebugPort
		}
		if port == 0 {
			return nil, fmt.Errorf("debug API is disabled (DEBUG_PORT=0)")
		}
		c := debug.NewDebugClient(port)
		if err := c.CheckConnection(); err != nil {
			return nil, err
		}
		return c, nil
	}

	debugCmd.AddCommand(&cobra.Command{
		Use:   "guilds",
		Short: "List connected guilds and their missing roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			guilds, err := c.GetGuilds()
			if err != nil {
				return err
			}
			PrintGuilds(cmd.OutOrStdout(), guilds)
			return nil
		},
	})

	var guildID int64
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the staff rosters of a guild from its roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			summary, err := c.SyncGuild(guildID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d members: %d added, %d reactivated\n",
				summary.MembersScanned, summary.Created, summary.Reactivated)
			return nil
		},
	}
	syncCmd.Flags().Int64Var(&guildID, "guild", 0, "Guild ID")
	syncCmd.MarkFlagRequired("guild")
	debugCmd.AddCommand(syncCmd)

	return debugCmd
}

// PrintGuilds writes one line per guild
func PrintGuilds(w io.Writer, guilds []bot.GuildInfo) {
	if len(guilds) == 0 {
		fmt.Fprintln(w, "Not connected to any guild")
		return
	}
	for _, g := range guilds {
		status := "ready"
		if !g.Configured {
			status = "not configured"
		} else if len(g.MissingRoles) > 0 {
			status = "missing " + strings.Join(g.MissingRoles, ", ")
		}
		fmt.Fprintf(w, "%s  %s  (%s)\n", g.ID, g.Name, status)
	}
}
