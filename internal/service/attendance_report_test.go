package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func TestGroupByDateMergesSlots(t *testing.T) {
	records := []models.AttendanceRecord{
		{StudentID: "s1", Date: "2024-01-15", Morning: models.Bool(true), CapturedImages: map[models.Slot]string{models.SlotMorning: "data:image/png;base64,AA=="}},
		{StudentID: "s1", Date: "2024-01-15", Afternoon: models.Bool(false)},
	}

	days := GroupByDate(records)
	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, models.PresencePresent, day.Morning.Status)
	assert.Equal(t, "data:image/png;base64,AA==", day.Morning.Photo)
	assert.Equal(t, models.PresenceAbsent, day.Afternoon.Status)
	assert.Equal(t, models.PresenceNotMarked, day.Evening.Status)
}

func TestGroupByDateLaterRecordWins(t *testing.T) {
	records := []models.AttendanceRecord{
		{Date: "2024-01-15", Morning: models.Bool(true)},
		{Date: "2024-01-15", Morning: models.Bool(false)},
	}
	days := GroupByDate(records)
	require.Len(t, days, 1)
	assert.Equal(t, models.PresenceAbsent, days[0].Morning.Status)
}

func TestGroupByDateOrdersNewestFirst(t *testing.T) {
	days := GroupByDate(recordsOn("2024-01-14", "2024-01-16", "2024-01-15"))
	require.Len(t, days, 3)
	assert.Equal(t, "2024-01-16", days[0].Date)
	assert.Equal(t, "2024-01-15", days[1].Date)
	assert.Equal(t, "2024-01-14", days[2].Date)
}

func TestGroupByDateIsIdempotent(t *testing.T) {
	records := []models.AttendanceRecord{
		{Date: "2024-01-15", Morning: models.Bool(true), Afternoon: models.Bool(true), Evening: models.Bool(false)},
		{Date: "2024-01-14", Afternoon: models.Bool(true)},
	}
	first := GroupByDate(records)

	// feed the grouped output back in as one record per date
	regrouped := make([]models.AttendanceRecord, 0, len(first))
	for _, day := range first {
		r := models.AttendanceRecord{Date: day.Date}
		for _, slot := range models.Slots {
			switch day.Slot(slot).Status {
			case models.PresencePresent:
				r.SetPresence(slot, true, day.Slot(slot).Photo)
			case models.PresenceAbsent:
				r.SetPresence(slot, false, day.Slot(slot).Photo)
			}
		}
		regrouped = append(regrouped, r)
	}
	assert.Equal(t, first, GroupByDate(regrouped))
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
}

func TestSummarizeAttendance(t *testing.T) {
	days := GroupByDate([]models.AttendanceRecord{
		{Date: "2024-01-15", Morning: models.Bool(true), Afternoon: models.Bool(true), Evening: models.Bool(false)},
		{Date: "2024-01-16", Morning: models.Bool(true)},
	})
	stats := SummarizeAttendance(days)
	assert.Equal(t, models.AttendanceStats{Present: 3, Absent: 1, Total: 4, Percentage: 75}, stats)

	assert.Equal(t, models.AttendanceStats{}, SummarizeAttendance(nil))

	third := SummarizeAttendance(GroupByDate([]models.AttendanceRecord{
		{Date: "2024-01-15", Morning: models.Bool(true), Afternoon: models.Bool(false), Evening: models.Bool(false)},
	}))
	assert.Equal(t, 33, third.Percentage)
}

func newReportService() *ReportService {
	store := newSeededStore()
	backend := mockBackend()
	students := NewStudentService(backend, store, nil, nil)
	attendance := NewAttendanceService(backend, store, nil, nil)
	return NewReportService(students, attendance, nil)
}

func TestReportServiceStudentReport(t *testing.T) {
	report, err := newReportService().StudentReport(context.Background(), scopeFor(stMarys), "student1", models.RangeMonthly, "2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", report.Student.Name)
	require.Len(t, report.Days, 1)
	assert.Equal(t, models.AttendanceStats{Present: 2, Absent: 1, Total: 3, Percentage: 67}, report.Stats)
}

func TestReportServiceExportCSV(t *testing.T) {
	file, err := newReportService().Export(context.Background(), scopeFor(stMarys), "student1", models.RangeDaily, "2024-01-15", models.ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "attendance_Alice_Johnson_2024-01.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	expected := strings.Join([]string{
		"Student Name,Alice Johnson",
		"Class,10",
		"Section,A",
		"Period,\"Mon, Jan 15, 2024 - daily\"",
		"",
		"Date,Morning,Afternoon,Evening,Status",
		"\"Mon, Jan 15, 2024\",Present,Present,Absent,Completed",
		"",
		"Summary",
		"Total Days,1",
		"Present,2",
		"Absent,1",
		"Attendance Percentage,67%",
		"",
	}, "\n")
	assert.Equal(t, expected, string(file.Data))
}

func TestReportServiceExportFormats(t *testing.T) {
	svc := newReportService()
	ctx := context.Background()

	pdf, err := svc.Export(ctx, scopeFor(stMarys), "student2", models.RangeAll, "", models.ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, "attendance_Bob_Smith_all.pdf", pdf.Filename)

	xlsx, err := svc.Export(ctx, scopeFor(stMarys), "student2", models.RangeAll, "", models.ReportFormatXLSX)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx.Data)

	_, err = svc.Export(ctx, scopeFor(stMarys), "student2", models.RangeAll, "", "docx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Export(ctx, scopeFor(stMarys), "missing", models.RangeAll, "", models.ReportFormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
