package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campus-kit/timetable-api/internal/models"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
	"github.com/campus-kit/timetable-api/pkg/export"
)

// Export formats supported by the schedule export endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var exportHeaders = []string{"Course", "Professor", "Day", "Start", "End", "Room", "Conflicts"}

// ExportService renders stored schedules as downloadable documents.
type ExportService struct {
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	maxRows int
}

// NewExportService builds the exporter pair.
func NewExportService(maxRows int) *ExportService {
	if maxRows <= 0 {
		maxRows = 500
	}
	return &ExportService{
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		maxRows: maxRows,
	}
}

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Render produces a tabular document for the schedule, entries ordered
// by day then start time for readability.
func (s *ExportService) Render(schedule *models.Schedule, format string, professorNames map[string]string) (*ExportResult, error) {
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	if len(schedule.Entries) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule exceeds export limit of %d rows", s.maxRows))
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: buildRows(schedule, professorNames)}
	title := fmt.Sprintf("Weekly Timetable %s", schedule.ID)

	switch strings.ToLower(format) {
	case FormatCSV, "":
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("schedule-%s.csv", schedule.ID),
			Body:        body,
		}, nil
	case FormatPDF:
		body, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("schedule-%s.pdf", schedule.ID),
			Body:        body,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildRows(schedule *models.Schedule, professorNames map[string]string) []map[string]string {
	entries := make([]models.ScheduleEntry, len(schedule.Entries))
	copy(entries, schedule.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].AssignedTime.Day.Order(), entries[j].AssignedTime.Day.Order()
		if di != dj {
			return di < dj
		}
		return entries[i].AssignedTime.StartTime < entries[j].AssignedTime.StartTime
	})

	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		professor := professorNames[entry.ProfessorID]
		if entry.ProfessorID == "" {
			professor = "-"
		} else if professor == "" {
			professor = entry.ProfessorID
		}
		rows = append(rows, map[string]string{
			"Course":    entry.Name,
			"Professor": professor,
			"Day":       string(entry.AssignedTime.Day),
			"Start":     entry.AssignedTime.StartTime,
			"End":       entry.AssignedTime.EndTime,
			"Room":      entry.Room,
			"Conflicts": fmt.Sprintf("%d", len(entry.Conflicts)),
		})
	}
	return rows
}
