package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/pkg/export"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
	"github.com/course-compass/course-compass-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Remove(filename string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
}

// ExportService renders a filled timetable grid as a downloadable file and
// hands back a signed, expiring URL for it.
type ExportService struct {
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{storage: store, csv: csv, pdf: pdf, signer: signer, logger: logger, cfg: cfg}
}

// Generate renders the timetable in the requested format, stores the file and
// returns the signed download handle.
func (s *ExportService) Generate(timetableView *dto.TimetableResponse, format, title string) (*dto.ExportTimetableResponse, error) {
	if timetableView == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "timetable payload required")
	}

	dataset := buildTimetableDataset(timetableView)
	if title == "" {
		title = "Timetable"
	}

	var payload []byte
	var err error
	switch format {
	case "csv":
		payload, err = s.csv.Render(dataset)
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("timetable-%s.%s", exportID, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export url")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &dto.ExportTimetableResponse{
		ExportID:    exportID,
		Format:      format,
		DownloadURL: fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt:   expiresAt,
	}, nil
}

// OpenDownload validates a signed token and opens the referenced file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, "", appErrors.Clone(appErrors.ErrExpired, "")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, relPath, nil
}

// buildTimetableDataset lays the day-major slot list out as one row per
// period with a column per weekday. Cells show the course name when the
// selection carries it, falling back to the bare identifier.
func buildTimetableDataset(view *dto.TimetableResponse) export.Dataset {
	names := make(map[string]string, len(view.Courses))
	for _, course := range view.Courses {
		names[course.ID] = course.Name
	}

	var days []models.Weekday
	seenDays := make(map[models.Weekday]bool)
	var periods []models.PeriodID
	seenPeriods := make(map[models.PeriodID]bool)
	times := make(map[models.PeriodID]models.TimeRange)
	cells := make(map[models.PeriodID]map[models.Weekday]string)

	for _, slot := range view.Grid {
		if !seenDays[slot.Weekday] {
			seenDays[slot.Weekday] = true
			days = append(days, slot.Weekday)
		}
		if !seenPeriods[slot.Period] {
			seenPeriods[slot.Period] = true
			periods = append(periods, slot.Period)
			times[slot.Period] = slot.Time
			cells[slot.Period] = make(map[models.Weekday]string)
		}
		if slot.CourseID == "" {
			continue
		}
		label := slot.CourseID
		if name := names[slot.CourseID]; name != "" {
			label = fmt.Sprintf("%s (%s)", name, slot.CourseID)
		}
		cells[slot.Period][slot.Weekday] = label
	}

	headers := []string{"Period", "Time"}
	for _, day := range days {
		headers = append(headers, string(day))
	}

	rows := make([]map[string]string, 0, len(periods))
	for _, period := range periods {
		row := map[string]string{
			"Period": string(period),
		}
		if tr := times[period]; tr.Start != "" || tr.End != "" {
			row["Time"] = fmt.Sprintf("%s-%s", tr.Start, tr.End)
		}
		for _, day := range days {
			row[string(day)] = cells[period][day]
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}
