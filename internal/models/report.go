package models

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// Valid returns true when the format can be rendered.
func (f ReportFormat) Valid() bool {
	switch f {
	case ReportFormatCSV, ReportFormatPDF, ReportFormatXLSX:
		return true
	default:
		return false
	}
}

// AttendanceReport is a student's grouped attendance over a window.
type AttendanceReport struct {
	Student Student           `json:"student"`
	Range   AttendanceRange   `json:"range"`
	Anchor  string            `json:"anchor,omitempty"`
	Days    []DailyAttendance `json:"days"`
	Stats   AttendanceStats   `json:"stats"`
}

// ReportFile is a rendered export ready to stream.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
