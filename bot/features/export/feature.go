package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"
	"thumbnailbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature exports completed thumbnails as CSV attachments
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	metrics    *observability.MetricsProvider
	now        func() time.Time
}

// NewFeature creates a new export feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, metrics *observability.MetricsProvider) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		metrics:    metrics,
		now:        time.Now,
	}
}

// HandleCommand routes /export subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	subcommand, options := common.SubcommandOptions(i)

	var run func(ctx context.Context, svc interfaces.ExportService) (*interfaces.ExportFile, error)
	switch subcommand {
	case "current-month":
		run = func(ctx context.Context, svc interfaces.ExportService) (*interfaces.ExportFile, error) {
			return svc.ExportCurrentMonth(ctx, f.now())
		}
	case "month":
		year, _ := options.Int("year")
		month, _ := options.Int("month")
		run = func(ctx context.Context, svc interfaces.ExportService) (*interfaces.ExportFile, error) {
			return svc.ExportMonth(ctx, int(year), int(month))
		}
	default:
		log.Warnf("Unknown export subcommand: %s", subcommand)
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer export: %v", err)
		return
	}

	ctx := context.Background()
	var file *interfaces.ExportFile
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		file, err = run(ctx, services.NewExportService(uow.ThumbnailRecordRepository()))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	f.metrics.RecordExportRows(file.Rows)
	log.WithFields(log.Fields{
		"guild": guildID,
		"file":  file.Filename,
		"rows":  file.Rows,
	}).Info("Thumbnail export generated")

	attachment := &discordgo.File{
		Name:        file.Filename,
		ContentType: "text/csv",
		Reader:      bytes.NewReader(file.Data),
	}
	if err := common.FollowUpWithFile(s, i, ExportMessage(file), attachment, true); err != nil {
		log.Errorf("Failed to send export: %v", err)
		common.FollowUpWithError(s, i, common.MsgGenericError)
	}
}

// ExportMessage summarizes an export attachment
func ExportMessage(file *interfaces.ExportFile) string {
	noun := "thumbnails"
	if file.Rows == 1 {
		noun = "thumbnail"
	}
	return fmt.Sprintf("📄 Exported %d %s to `%s`", file.Rows, noun, file.Filename)
}
