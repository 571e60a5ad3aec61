package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"thumbnailbot/application"
	"thumbnailbot/config"
	"thumbnailbot/database"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"
	"thumbnailbot/infrastructure"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	guildID int64
	year    int
	month   int
	outDir  string
}

func newExportCommand() *cobra.Command {
	opts := &exportOptions{}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the monthly thumbnail CSV of a guild to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if opts.outDir == "" {
				opts.outDir = cfg.ExportDir
			}

			path, rows, err := runExport(cmd.Context(), cfg.GetDatabaseURL(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d thumbnail(s) to %s\n", rows, path)
			return nil
		},
	}

	exportCmd.Flags().Int64Var(&opts.guildID, "guild", 0, "Guild ID")
	exportCmd.Flags().IntVar(&opts.year, "year", 0, "Year, e.g. 2026")
	exportCmd.Flags().IntVar(&opts.month, "month", 0, "Month number, 1-12")
	exportCmd.Flags().StringVar(&opts.outDir, "out", "", "Output directory (default EXPORT_DIR)")
	exportCmd.MarkFlagRequired("guild")
	exportCmd.MarkFlagRequired("year")
	exportCmd.MarkFlagRequired("month")

	return exportCmd
}

func runExport(ctx context.Context, databaseURL string, opts *exportOptions) (string, int, error) {
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Exports never publish events
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())

	file, err := exportMonth(ctx, uowFactory, opts.guildID, opts.year, opts.month)
	if err != nil {
		return "", 0, err
	}

	path, err := writeExport(opts.outDir, file)
	if err != nil {
		return "", 0, err
	}

	log.WithFields(log.Fields{
		"guild": opts.guildID,
		"rows":  file.Rows,
		"path":  path,
	}).Info("Thumbnails exported")
	return path, file.Rows, nil
}

func exportMonth(ctx context.Context, uowFactory application.UnitOfWorkFactory, guildID int64, year, month int) (*interfaces.ExportFile, error) {
	uow := uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return services.NewExportService(uow.ThumbnailRecordRepository()).ExportMonth(ctx, year, month)
}

// writeExport stores the CSV under dir and returns its path
func writeExport(dir string, file *interfaces.ExportFile) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, file.Filename)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
