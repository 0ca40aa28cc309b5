package mockstore

import (
	"context"

	"github.com/noah-isme/school-portal/internal/models"
)

// ExamResults lists every result of the tenant.
func (s *Store) ExamResults(ctx context.Context, tenant models.TenantKey) ([]models.ExamResult, error) {
	return s.examsWhere(ctx, tenant, nil)
}

// ExamResultsByStudent lists one student's results.
func (s *Store) ExamResultsByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.ExamResult, error) {
	return s.examsWhere(ctx, tenant, func(e models.ExamResult) bool { return e.StudentID == studentID })
}

// ExamResultsByType lists results of one exam type.
func (s *Store) ExamResultsByType(ctx context.Context, tenant models.TenantKey, examType models.ExamType) ([]models.ExamResult, error) {
	return s.examsWhere(ctx, tenant, func(e models.ExamResult) bool { return e.ExamType == examType })
}

// ExamResultsByClass lists results of a class; an empty section covers the whole class.
func (s *Store) ExamResultsByClass(ctx context.Context, tenant models.TenantKey, class, section string) ([]models.ExamResult, error) {
	var out []models.ExamResult
	err := s.read(ctx, tenant, func(schoolID string) error {
		roster := s.rosterIDs(schoolID, class, section)
		out = s.exams.list(schoolID, func(e models.ExamResult) bool {
			_, ok := roster[e.StudentID]
			return ok
		})
		return nil
	})
	return out, err
}

func (s *Store) examsWhere(ctx context.Context, tenant models.TenantKey, keep func(models.ExamResult) bool) ([]models.ExamResult, error) {
	var out []models.ExamResult
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.exams.list(schoolID, keep)
		return nil
	})
	return out, err
}

// CreateExamResult stores a result for a student of the school.
func (s *Store) CreateExamResult(ctx context.Context, tenant models.TenantKey, result models.ExamResult) (models.ExamResult, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		if _, ok := s.students.find(schoolID, studentID(result.StudentID)); !ok {
			return invalid("student " + result.StudentID + " does not belong to this school")
		}
		result.ID = newID("exam")
		result.SchoolID = schoolID
		s.exams.insert(schoolID, result)
		return nil
	})
	if err != nil {
		return models.ExamResult{}, err
	}
	return result.Clone(), nil
}

// UpdateExamResult merges patch into a result.
func (s *Store) UpdateExamResult(ctx context.Context, tenant models.TenantKey, id string, patch models.ExamResultPatch) (models.ExamResult, error) {
	var out models.ExamResult
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.exams.find(schoolID, examID(id))
		if !ok {
			return notFound("exam result")
		}
		current := s.exams.get(i)
		patch.Apply(&current)
		s.exams.replace(i, current)
		out = current
		return nil
	})
	return out, err
}

// DeleteExamResult removes a result and returns it.
func (s *Store) DeleteExamResult(ctx context.Context, tenant models.TenantKey, id string) (models.ExamResult, error) {
	var out models.ExamResult
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.exams.find(schoolID, examID(id))
		if !ok {
			return notFound("exam result")
		}
		out = s.exams.get(i)
		s.exams.remove(i)
		return nil
	})
	return out, err
}

func examID(id string) func(models.ExamResult) bool {
	return func(e models.ExamResult) bool { return e.ID == id }
}
