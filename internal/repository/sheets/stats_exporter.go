package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/egguard/egguard-backend/internal/config"
	"github.com/egguard/egguard-backend/internal/domain/models"
)

const statsRange = "FarmStats!A:G"

// StatsExporter defines the export operation the daily report job depends on.
type StatsExporter interface {
	AppendDailyStats(ctx context.Context, row models.DailyStatsRow) error
}

// GoogleSheetExporter implements StatsExporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (StatsExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyStats appends one per-farm stats row to the spreadsheet.
func (e *GoogleSheetExporter) AppendDailyStats(ctx context.Context, row models.DailyStatsRow) error {
	values := []interface{}{
		row.Date.Format("2006-01-02"),
		row.FarmID,
		row.FarmName,
		row.Stats.TotalPickedEggs,
		row.Stats.AverageNotBrokenEggsPickedPerDay,
		row.Stats.AverageBrokenEggsPickedPerDay,
		row.Stats.BrokenEggsPercentage,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, statsRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append stats row for farm %s: %w", row.FarmID, err)
	}

	e.logger.Debug("stats row appended to sheet", zap.String("farm_id", row.FarmID))
	return nil
}
