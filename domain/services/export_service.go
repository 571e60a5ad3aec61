package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
)

// ExportDateLayout formats record timestamps in exports (always UTC)
const ExportDateLayout = "2006-01-02 15:04:05"

// ExportHeaders are the CSV column titles in order
var ExportHeaders = []string{
	"Thumbnail Record ID",
	"Designer (Discord Username)",
	"Creator",
	"Category",
	"YouTube URL",
	"Created Date",
}

// exportService implements the ExportService interface
type exportService struct {
	recordRepo interfaces.ThumbnailRecordRepository
}

// NewExportService creates a new export service
func NewExportService(recordRepo interfaces.ThumbnailRecordRepository) interfaces.ExportService {
	return &exportService{
		recordRepo: recordRepo,
	}
}

// ExportMonth renders every record created in the given UTC month
func (s *exportService) ExportMonth(ctx context.Context, year, month int) (*interfaces.ExportFile, error) {
	from, to, err := MonthBounds(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.recordRepo.ListForExport(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load thumbnail records: %w", err)
	}
	if len(rows) == 0 {
		return nil, &NoRecordsError{Month: month, Year: year}
	}

	data, err := renderCSV(rows)
	if err != nil {
		return nil, err
	}

	return &interfaces.ExportFile{
		Filename: ExportFilename(year, month),
		Data:     data,
		Rows:     len(rows),
	}, nil
}

// ExportCurrentMonth renders the month containing now
func (s *exportService) ExportCurrentMonth(ctx context.Context, now time.Time) (*interfaces.ExportFile, error) {
	now = now.UTC()
	return s.ExportMonth(ctx, now.Year(), int(now.Month()))
}

// MonthBounds returns [first day of month, first day of next month) in UTC
func MonthBounds(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 2000 || year > 9999 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// ExportFilename names an export file, e.g. thumbnails_March_2025.csv
func ExportFilename(year, month int) string {
	return fmt.Sprintf("thumbnails_%s_%d.csv", time.Month(month).String(), year)
}

func renderCSV(rows []*entities.ThumbnailRecordExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.RecordID, 10),
			row.DesignerName,
			row.CreatorName,
			row.Category,
			row.SourceURL,
			row.CreatedAt.UTC().Format(ExportDateLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
