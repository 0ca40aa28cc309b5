package mockstore

import (
	"context"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// Queries lists every query of the tenant.
func (s *Store) Queries(ctx context.Context, tenant models.TenantKey) ([]models.Query, error) {
	return s.queriesWhere(ctx, tenant, nil)
}

// QueriesByStudent lists queries about one student.
func (s *Store) QueriesByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.Query, error) {
	return s.queriesWhere(ctx, tenant, func(q models.Query) bool { return q.StudentID == studentID })
}

// QueriesByParent lists queries sent by one parent.
func (s *Store) QueriesByParent(ctx context.Context, tenant models.TenantKey, parentID string) ([]models.Query, error) {
	return s.queriesWhere(ctx, tenant, func(q models.Query) bool { return q.ParentID == parentID })
}

// Query returns one query.
func (s *Store) Query(ctx context.Context, tenant models.TenantKey, id string) (models.Query, error) {
	var out models.Query
	err := s.read(ctx, tenant, func(schoolID string) error {
		i, ok := s.queries.find(schoolID, queryID(id))
		if !ok {
			return notFound("query")
		}
		out = s.queries.get(i)
		return nil
	})
	return out, err
}

func (s *Store) queriesWhere(ctx context.Context, tenant models.TenantKey, keep func(models.Query) bool) ([]models.Query, error) {
	var out []models.Query
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.queries.list(schoolID, keep)
		return nil
	})
	return out, err
}

// CreateQuery opens a pending query dated today.
func (s *Store) CreateQuery(ctx context.Context, tenant models.TenantKey, query models.Query) (models.Query, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		if _, ok := s.students.find(schoolID, studentID(query.StudentID)); !ok {
			return invalid("student " + query.StudentID + " does not belong to this school")
		}
		query.ID = newID("query")
		query.SchoolID = schoolID
		query.Status = models.QueryPending
		query.Response = ""
		query.ResponseDate = nil
		query.Date = s.today()
		s.queries.insert(schoolID, query)
		return nil
	})
	if err != nil {
		return models.Query{}, err
	}
	return query, nil
}

// UpdateQuery merges editable fields into a query.
func (s *Store) UpdateQuery(ctx context.Context, tenant models.TenantKey, id string, patch models.QueryPatch) (models.Query, error) {
	return s.mutateQuery(ctx, tenant, id, func(q *models.Query) error {
		patch.Apply(q)
		return nil
	})
}

// RespondQuery records a response and moves the query to responded.
func (s *Store) RespondQuery(ctx context.Context, tenant models.TenantKey, id, response string) (models.Query, error) {
	return s.mutateQuery(ctx, tenant, id, func(q *models.Query) error {
		if !q.Status.CanRespond() {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "cannot respond to a "+string(q.Status)+" query")
		}
		today := s.today()
		q.Response = response
		q.ResponseDate = &today
		q.Status = models.QueryResponded
		return nil
	})
}

// SetQueryStatus applies an explicit status change.
func (s *Store) SetQueryStatus(ctx context.Context, tenant models.TenantKey, id string, status models.QueryStatus) (models.Query, error) {
	return s.mutateQuery(ctx, tenant, id, func(q *models.Query) error {
		if !q.Status.CanTransition(status) {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "cannot move query from "+string(q.Status)+" to "+string(status))
		}
		q.Status = status
		return nil
	})
}

func (s *Store) mutateQuery(ctx context.Context, tenant models.TenantKey, id string, fn func(*models.Query) error) (models.Query, error) {
	var out models.Query
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.queries.find(schoolID, queryID(id))
		if !ok {
			return notFound("query")
		}
		current := s.queries.get(i)
		if err := fn(&current); err != nil {
			return err
		}
		s.queries.replace(i, current)
		out = current
		return nil
	})
	return out, err
}

func queryID(id string) func(models.Query) bool {
	return func(q models.Query) bool { return q.ID == id }
}
