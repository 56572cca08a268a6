package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type eventFilterer interface {
	FilterAll(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

type tableRenderer interface {
	Render(t export.Table) ([]byte, error)
}

// ExportResult is a rendered export ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders admin event listings to downloadable files.
type ExportService struct {
	events eventFilterer
	csv    tableRenderer
	pdf    tableRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the export service. Nil renderers fall back to the defaults.
func NewExportService(events eventFilterer, csv tableRenderer, pdf tableRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{events: events, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

var eventColumns = []export.Column{
	{Key: "title", Title: "Title", Width: 60},
	{Key: "event_date", Title: "Date", Width: 25},
	{Key: "venue", Title: "Venue", Width: 50},
	{Key: "category", Title: "Category", Width: 30},
	{Key: "status", Title: "Status", Width: 28},
	{Key: "planner", Title: "Planner"},
}

// Events renders the events matching filter in format.
func (s *ExportService) Events(ctx context.Context, filter models.EventFilter, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	var renderer tableRenderer
	var contentType string
	switch format {
	case ExportFormatCSV:
		renderer, contentType = s.csv, "text/csv"
	case ExportFormatPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	events, err := s.events.FilterAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	table := export.Table{Title: "Events", Columns: eventColumns, Rows: make([]map[string]string, 0, len(events))}
	for _, event := range events {
		table.Rows = append(table.Rows, map[string]string{
			"title":      event.Title,
			"event_date": event.EventDate.Format(dto.DateLayout),
			"venue":      event.Venue,
			"category":   string(event.Category),
			"status":     string(event.Status),
			"planner":    event.PlannerName,
		})
	}

	data, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Debug("rendered event export", zap.String("format", format), zap.Int("rows", len(events)))

	return &ExportResult{
		Filename:    fmt.Sprintf("events-%s.%s", s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}
