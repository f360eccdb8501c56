package export

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/plugg/internal/app"
	"github.com/shrimpsizemoose/plugg/internal/schedule"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

// GSheetExporter periodically writes a per-subject rollup of the
// current week's revision sessions to a Google Sheet.
type GSheetExporter struct {
	config        *app.Config
	store         store.PlannerStore
	scheduler     *gocron.Scheduler
	sheetsService *sheets.Service
}

func NewGSheetExporter(config *app.Config, plannerStore store.PlannerStore) (*GSheetExporter, error) {
	ctx := context.Background()
	scheduler := gocron.NewScheduler(time.UTC)

	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(config.Export.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	exporter := &GSheetExporter{
		config:        config,
		store:         plannerStore,
		scheduler:     scheduler,
		sheetsService: svc,
	}

	_, err = scheduler.Cron(config.Export.Schedule).Do(func() {
		if err := exporter.Export(); err != nil {
			logger.Error.Printf("Export failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule export: %w", err)
	}

	scheduler.StartAsync()
	return exporter, nil
}

// Export writes one row per subject for the week containing today:
// sessions planned, minutes planned, minutes completed.
func (e *GSheetExporter) Export() error {
	week := schedule.WeekDays(time.Now())
	start := schedule.DateKey(week[0])
	end := schedule.DateKey(week[6])

	stats, err := e.store.FetchRevisionStats(start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch revision stats: %w", err)
	}

	values := [][]interface{}{
		{fmt.Sprintf("Week of %s", schedule.WeekRangeLabel(week))},
		{"Subject", "Sessions", "Planned min", "Completed min"},
	}
	for _, stat := range stats {
		values = append(values, []interface{}{
			stat.SubjectName,
			stat.Sessions,
			stat.PlannedMinutes,
			stat.CompletedMinutes,
		})
	}
	values = append(values, []interface{}{
		fmt.Sprintf("UPD: %s", time.Now().Format("2 January 15:04")),
	})

	updateRange := fmt.Sprintf("%s!A1", e.config.Export.SheetName)
	_, err = e.sheetsService.Spreadsheets.Values.Update(e.config.Export.SheetID, updateRange,
		&sheets.ValueRange{Values: values}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update sheet: %w", err)
	}

	logger.Info.Printf("Exported %d subject rows for %s..%s", len(stats), start, end)
	return nil
}
