package mockstore

import (
	"context"

	"github.com/noah-isme/school-portal/internal/models"
)

// AttendanceByStudent returns the student's raw records in insertion order.
func (s *Store) AttendanceByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.attendance.list(schoolID, func(r models.AttendanceRecord) bool { return r.StudentID == studentID })
		return nil
	})
	return out, err
}

// AttendanceByClass returns records of the class roster on date. An empty
// section matches every section, an empty date every date.
func (s *Store) AttendanceByClass(ctx context.Context, tenant models.TenantKey, class, section, date string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	err := s.read(ctx, tenant, func(schoolID string) error {
		roster := s.rosterIDs(schoolID, class, section)
		out = s.attendance.list(schoolID, func(r models.AttendanceRecord) bool {
			_, inClass := roster[r.StudentID]
			return inClass && (date == "" || r.Date == date)
		})
		return nil
	})
	return out, err
}

// CreateAttendance stores one raw attendance write for a student of the school.
func (s *Store) CreateAttendance(ctx context.Context, tenant models.TenantKey, record models.AttendanceRecord) (models.AttendanceRecord, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		if _, ok := s.students.find(schoolID, studentID(record.StudentID)); !ok {
			return invalid("student " + record.StudentID + " does not belong to this school")
		}
		record.ID = newID("att")
		record.SchoolID = schoolID
		s.attendance.insert(schoolID, record)
		return nil
	})
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return record.Clone(), nil
}

// UpdateAttendance merges patch into a record.
func (s *Store) UpdateAttendance(ctx context.Context, tenant models.TenantKey, id string, patch models.AttendancePatch) (models.AttendanceRecord, error) {
	var out models.AttendanceRecord
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.attendance.find(schoolID, func(r models.AttendanceRecord) bool { return r.ID == id })
		if !ok {
			return notFound("attendance record")
		}
		current := s.attendance.get(i)
		patch.Apply(&current)
		s.attendance.replace(i, current)
		out = current
		return nil
	})
	return out, err
}

func (s *Store) rosterIDs(schoolID, class, section string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, st := range s.students.list(schoolID, models.StudentFilter{Class: class, Section: section}.Matches) {
		ids[st.ID] = struct{}{}
	}
	return ids
}
