package mockstore

import (
	"context"

	"github.com/noah-isme/school-portal/internal/models"
)

// Students lists the tenant's students matching filter.
func (s *Store) Students(ctx context.Context, tenant models.TenantKey, filter models.StudentFilter) ([]models.Student, error) {
	var out []models.Student
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.students.list(schoolID, filter.Matches)
		return nil
	})
	return out, err
}

// Student returns one student.
func (s *Store) Student(ctx context.Context, tenant models.TenantKey, id string) (models.Student, error) {
	var out models.Student
	err := s.read(ctx, tenant, func(schoolID string) error {
		i, ok := s.students.find(schoolID, studentID(id))
		if !ok {
			return notFound("student")
		}
		out = s.students.get(i)
		return nil
	})
	return out, err
}

// StudentsByParent lists the children of a parent record.
func (s *Store) StudentsByParent(ctx context.Context, tenant models.TenantKey, parentID string) ([]models.Student, error) {
	return s.Students(ctx, tenant, models.StudentFilter{ParentID: parentID})
}

// CreateStudent stores a student and links it to its parent.
func (s *Store) CreateStudent(ctx context.Context, tenant models.TenantKey, student models.Student) (models.Student, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		if student.ParentID != "" {
			if _, ok := s.parents.find(schoolID, parentID(student.ParentID)); !ok {
				return invalid("parent " + student.ParentID + " does not belong to this school")
			}
		}
		student.ID = newID("student")
		student.SchoolID = schoolID
		s.students.insert(schoolID, student)
		if student.ParentID != "" {
			s.attachChild(schoolID, student.ParentID, student.ID)
		}
		return nil
	})
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// UpdateStudent merges patch into the student; a parent change moves the
// student between the parents' children sets.
func (s *Store) UpdateStudent(ctx context.Context, tenant models.TenantKey, id string, patch models.StudentPatch) (models.Student, error) {
	var out models.Student
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.students.find(schoolID, studentID(id))
		if !ok {
			return notFound("student")
		}
		current := s.students.get(i)
		previousParent := current.ParentID
		if patch.ParentID != nil && *patch.ParentID != "" && *patch.ParentID != previousParent {
			if _, ok := s.parents.find(schoolID, parentID(*patch.ParentID)); !ok {
				return invalid("parent " + *patch.ParentID + " does not belong to this school")
			}
		}
		patch.Apply(&current)
		current.SchoolID = schoolID
		s.students.replace(i, current)
		if current.ParentID != previousParent {
			if previousParent != "" {
				s.detachChild(schoolID, previousParent, current.ID)
			}
			if current.ParentID != "" {
				s.attachChild(schoolID, current.ParentID, current.ID)
			}
		}
		out = current
		return nil
	})
	return out, err
}

// Teachers lists the tenant's teachers.
func (s *Store) Teachers(ctx context.Context, tenant models.TenantKey) ([]models.Teacher, error) {
	var out []models.Teacher
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.teachers.list(schoolID, nil)
		return nil
	})
	return out, err
}

// Teacher returns one teacher.
func (s *Store) Teacher(ctx context.Context, tenant models.TenantKey, id string) (models.Teacher, error) {
	var out models.Teacher
	err := s.read(ctx, tenant, func(schoolID string) error {
		i, ok := s.teachers.find(schoolID, func(t models.Teacher) bool { return t.ID == id })
		if !ok {
			return notFound("teacher")
		}
		out = s.teachers.get(i)
		return nil
	})
	return out, err
}

// CreateTeacher stores a teacher.
func (s *Store) CreateTeacher(ctx context.Context, tenant models.TenantKey, teacher models.Teacher) (models.Teacher, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		teacher.ID = newID("teacher")
		teacher.SchoolID = schoolID
		s.teachers.insert(schoolID, teacher)
		return nil
	})
	if err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

// UpdateTeacher merges patch into the teacher.
func (s *Store) UpdateTeacher(ctx context.Context, tenant models.TenantKey, id string, patch models.TeacherPatch) (models.Teacher, error) {
	var out models.Teacher
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.teachers.find(schoolID, func(t models.Teacher) bool { return t.ID == id })
		if !ok {
			return notFound("teacher")
		}
		current := s.teachers.get(i)
		patch.Apply(&current)
		s.teachers.replace(i, current)
		out = current
		return nil
	})
	return out, err
}

// Parents lists the tenant's parents.
func (s *Store) Parents(ctx context.Context, tenant models.TenantKey) ([]models.Parent, error) {
	var out []models.Parent
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.parents.list(schoolID, nil)
		return nil
	})
	return out, err
}

// Parent returns one parent record.
func (s *Store) Parent(ctx context.Context, tenant models.TenantKey, id string) (models.Parent, error) {
	var out models.Parent
	err := s.read(ctx, tenant, func(schoolID string) error {
		i, ok := s.parents.find(schoolID, parentID(id))
		if !ok {
			return notFound("parent")
		}
		out = s.parents.get(i)
		return nil
	})
	return out, err
}

// CreateParent stores a parent and claims its children.
func (s *Store) CreateParent(ctx context.Context, tenant models.TenantKey, parent models.Parent) (models.Parent, error) {
	err := s.write(ctx, tenant, func(schoolID string) error {
		children, err := s.checkChildren(schoolID, parent.ChildrenIDs)
		if err != nil {
			return err
		}
		parent.ID = newID("parent")
		parent.SchoolID = schoolID
		parent.ChildrenIDs = children
		s.parents.insert(schoolID, parent)
		for _, child := range children {
			s.claimChild(schoolID, parent.ID, child)
		}
		return nil
	})
	if err != nil {
		return models.Parent{}, err
	}
	return parent, nil
}

// UpdateParent merges patch into the parent. A new children set releases
// dropped students and claims added ones.
func (s *Store) UpdateParent(ctx context.Context, tenant models.TenantKey, id string, patch models.ParentPatch) (models.Parent, error) {
	var out models.Parent
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.parents.find(schoolID, parentID(id))
		if !ok {
			return notFound("parent")
		}
		current := s.parents.get(i)
		previous := current.ChildrenIDs
		if patch.ChildrenIDs != nil {
			children, err := s.checkChildren(schoolID, *patch.ChildrenIDs)
			if err != nil {
				return err
			}
			patch.ChildrenIDs = &children
		}
		patch.Apply(&current)
		s.parents.replace(i, current)
		if patch.ChildrenIDs != nil {
			for _, child := range previous {
				if !current.HasChild(child) {
					s.releaseChild(schoolID, current.ID, child)
				}
			}
			for _, child := range current.ChildrenIDs {
				s.claimChild(schoolID, current.ID, child)
			}
		}
		out = s.parents.get(i)
		return nil
	})
	return out, err
}

// checkChildren verifies every id is a student of the school and drops duplicates.
func (s *Store) checkChildren(schoolID string, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := s.students.find(schoolID, studentID(id)); !ok {
			return nil, invalid("student " + id + " does not belong to this school")
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// claimChild points the student at parent, removing it from any other parent.
func (s *Store) claimChild(schoolID, parent, child string) {
	i, ok := s.students.find(schoolID, studentID(child))
	if !ok {
		return
	}
	student := s.students.get(i)
	if student.ParentID != "" && student.ParentID != parent {
		s.detachChild(schoolID, student.ParentID, child)
	}
	student.ParentID = parent
	s.students.replace(i, student)
}

// releaseChild clears the student's parent reference if it still points at parent.
func (s *Store) releaseChild(schoolID, parent, child string) {
	i, ok := s.students.find(schoolID, studentID(child))
	if !ok {
		return
	}
	student := s.students.get(i)
	if student.ParentID == parent {
		student.ParentID = ""
		s.students.replace(i, student)
	}
}

func (s *Store) attachChild(schoolID, parent, child string) {
	i, ok := s.parents.find(schoolID, parentID(parent))
	if !ok {
		return
	}
	p := s.parents.get(i)
	if !p.HasChild(child) {
		p.ChildrenIDs = append(p.ChildrenIDs, child)
		s.parents.replace(i, p)
	}
}

func (s *Store) detachChild(schoolID, parent, child string) {
	i, ok := s.parents.find(schoolID, parentID(parent))
	if !ok {
		return
	}
	p := s.parents.get(i)
	kept := p.ChildrenIDs[:0]
	for _, id := range p.ChildrenIDs {
		if id != child {
			kept = append(kept, id)
		}
	}
	p.ChildrenIDs = kept
	s.parents.replace(i, p)
}

func studentID(id string) func(models.Student) bool {
	return func(st models.Student) bool { return st.ID == id }
}

func parentID(id string) func(models.Parent) bool {
	return func(p models.Parent) bool { return p.ID == id }
}
