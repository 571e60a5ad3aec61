package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the thumbnailbot command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "thumbnailbot",
		Short: "Discord bot for thumbnail requests",
		Long: `Discord bot that routes thumbnail requests from editors to designers.

Running without a subcommand starts the bot.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newDebugCommand())
	return root
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}
}
