package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/export"
)

// GroupByDate folds raw records into one entry per date. Records are
// applied in order, so a later record wins a slot it defines; a slot a
// record leaves undefined never overwrites an earlier value. The result
// is sorted by date, newest first.
func GroupByDate(records []models.AttendanceRecord) []models.DailyAttendance {
	byDate := make(map[string]*models.DailyAttendance, len(records))
	order := make([]string, 0, len(records))

	for _, record := range records {
		day, ok := byDate[record.Date]
		if !ok {
			day = &models.DailyAttendance{
				Date:      record.Date,
				Morning:   models.SlotAttendance{Status: models.PresenceNotMarked},
				Afternoon: models.SlotAttendance{Status: models.PresenceNotMarked},
				Evening:   models.SlotAttendance{Status: models.PresenceNotMarked},
			}
			byDate[record.Date] = day
			order = append(order, record.Date)
		}
		for _, slot := range models.Slots {
			present := record.Presence(slot)
			if present == nil {
				continue
			}
			entry := day.Slot(slot)
			entry.Status = models.PresenceAbsent
			if *present {
				entry.Status = models.PresencePresent
			}
			entry.Photo = record.Photo(slot)
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i] > order[j] })
	out := make([]models.DailyAttendance, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out
}

// SummarizeAttendance counts marked slots over grouped days.
func SummarizeAttendance(days []models.DailyAttendance) models.AttendanceStats {
	var stats models.AttendanceStats
	for i := range days {
		for _, slot := range models.Slots {
			switch days[i].Slot(slot).Status {
			case models.PresencePresent:
				stats.Present++
			case models.PresenceAbsent:
				stats.Absent++
			}
		}
	}
	stats.Total = stats.Present + stats.Absent
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(100 * float64(stats.Present) / float64(stats.Total)))
	}
	return stats
}

type reportStudentSource interface {
	Get(ctx context.Context, scope gateway.Scope, id string) (*models.Student, error)
}

type reportAttendanceSource interface {
	ByStudent(ctx context.Context, scope gateway.Scope, studentID string, rng models.AttendanceRange, anchor string) ([]models.AttendanceRecord, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ReportService builds per-student attendance reports and their exports.
type ReportService struct {
	students   reportStudentSource
	attendance reportAttendanceSource
	renderers  map[models.ReportFormat]datasetRenderer
	logger     *zap.Logger
}

// NewReportService constructs the report service with the CSV, PDF and
// XLSX renderers.
func NewReportService(students reportStudentSource, attendance reportAttendanceSource, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students:   students,
		attendance: attendance,
		renderers: map[models.ReportFormat]datasetRenderer{
			models.ReportFormatCSV:  export.NewCSVExporter(),
			models.ReportFormatPDF:  export.NewPDFExporter(),
			models.ReportFormatXLSX: export.NewXLSXExporter(),
		},
		logger: logger,
	}
}

// StudentReport groups a student's attendance in the requested window.
func (s *ReportService) StudentReport(ctx context.Context, scope gateway.Scope, studentID string, rng models.AttendanceRange, anchor string) (*models.AttendanceReport, error) {
	student, err := s.students.Get(ctx, scope, studentID)
	if err != nil {
		return nil, err
	}
	if rng == "" {
		rng = models.RangeAll
	}
	records, err := s.attendance.ByStudent(ctx, scope, studentID, rng, anchor)
	if err != nil {
		return nil, err
	}
	days := GroupByDate(records)
	return &models.AttendanceReport{
		Student: *student,
		Range:   rng,
		Anchor:  anchor,
		Days:    days,
		Stats:   SummarizeAttendance(days),
	}, nil
}

// Export renders the student's report in the given format.
func (s *ReportService) Export(ctx context.Context, scope gateway.Scope, studentID string, rng models.AttendanceRange, anchor string, format models.ReportFormat) (*models.ReportFile, error) {
	if format == "" {
		format = models.ReportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of csv, pdf, xlsx")
	}
	report, err := s.StudentReport(ctx, scope, studentID, rng, anchor)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(AttendanceDataset(report))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance report")
	}
	s.logger.Info("attendance report exported",
		zap.String("student_id", studentID),
		zap.String("format", string(format)),
		zap.Int("days", len(report.Days)),
	)
	return &models.ReportFile{
		Filename:    reportFilename(report, format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

var attendanceHeaders = []string{"Date", "Morning", "Afternoon", "Evening", "Status"}

// AttendanceDataset lays a report out as metadata rows, one row per day
// and a summary block.
func AttendanceDataset(report *models.AttendanceReport) export.Dataset {
	rows := make([]map[string]string, 0, len(report.Days))
	for i := range report.Days {
		day := &report.Days[i]
		rows = append(rows, map[string]string{
			"Date":      formatReportDate(day.Date),
			"Morning":   presenceLabel(day.Morning.Status),
			"Afternoon": presenceLabel(day.Afternoon.Status),
			"Evening":   presenceLabel(day.Evening.Status),
			"Status":    dayStatus(day),
		})
	}

	return export.Dataset{
		Title: "Attendance Report",
		Preamble: [][]string{
			{"Student Name", report.Student.Name},
			{"Class", report.Student.Class},
			{"Section", report.Student.Section},
			{"Period", reportPeriod(report)},
		},
		Headers: attendanceHeaders,
		Rows:    rows,
		Summary: [][]string{
			{"Total Days", strconv.Itoa(len(report.Days))},
			{"Present", strconv.Itoa(report.Stats.Present)},
			{"Absent", strconv.Itoa(report.Stats.Absent)},
			{"Attendance Percentage", fmt.Sprintf("%d%%", report.Stats.Percentage)},
		},
	}
}

func presenceLabel(status models.PresenceStatus) string {
	switch status {
	case models.PresencePresent:
		return "Present"
	case models.PresenceAbsent:
		return "Absent"
	default:
		return "Not Marked"
	}
}

func dayStatus(day *models.DailyAttendance) string {
	for _, slot := range models.Slots {
		if day.Slot(slot).Status == models.PresenceNotMarked {
			return "Partial"
		}
	}
	return "Completed"
}

// formatReportDate renders YYYY-MM-DD as "Mon, Jan 15, 2024"; other
// input is returned unchanged.
func formatReportDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

func reportPeriod(report *models.AttendanceReport) string {
	if report.Anchor == "" {
		return string(report.Range)
	}
	return formatReportDate(report.Anchor) + " - " + string(report.Range)
}

func reportFilename(report *models.AttendanceReport, format models.ReportFormat) string {
	name := strings.Join(strings.Fields(report.Student.Name), "_")
	if name == "" {
		name = report.Student.ID
	}
	period := string(report.Range)
	if len(report.Anchor) >= 7 {
		period = report.Anchor[:7]
	}
	return fmt.Sprintf("attendance_%s_%s.%s", name, period, format)
}
