package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func studentIDs(students []models.Student) []string {
	out := make([]string, 0, len(students))
	for _, st := range students {
		out = append(out, st.ID)
	}
	return out
}

func TestStudentServiceRosterAndCreate(t *testing.T) {
	svc := NewStudentService(mockBackend(), newSeededStore(), nil, nil)
	ctx := context.Background()
	scope := scopeFor(stMarys)

	roster, err := svc.Roster(ctx, scope, "10", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"student1", "student2"}, studentIDs(roster))

	created, err := svc.Create(ctx, scope, models.Student{Name: "Dana Lee", Class: "10", Section: "A"})
	require.NoError(t, err)

	roster, err = svc.Roster(ctx, scope, "10", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"student1", "student2", created.ID}, studentIDs(roster))

	_, err = svc.Create(ctx, scope, models.Student{Name: "No Class"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	empty := ""
	_, err = svc.Update(ctx, scope, "student1", models.StudentPatch{Name: &empty})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Get(ctx, scopeFor(brightFuture), "student1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentServiceFiltersRemoteResults(t *testing.T) {
	remote := &fakeRemote{respond: func(call remoteCall) (interface{}, error) {
		return []models.Student{
			{ID: "r1", Class: "10", Section: "A", ParentID: "p1"},
			{ID: "r2", Class: "10", Section: "B", ParentID: "p1"},
		}, nil
	}}
	svc := NewStudentService(realBackend(remote, nil), newSeededStore(), nil, nil)

	students, err := svc.List(context.Background(), scopeFor(stMarys), models.StudentFilter{ParentID: "p1", Section: "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, studentIDs(students))
	assert.Equal(t, "p1", remote.Calls()[0].Query.Get("parent_id"))
}

func TestTeacherServiceCRUD(t *testing.T) {
	svc := NewTeacherService(mockBackend(), newSeededStore(), nil, nil)
	ctx := context.Background()
	scope := scopeFor(brightFuture)

	teachers, err := svc.List(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)

	created, err := svc.Create(ctx, scope, models.Teacher{Name: "Ola Teacher", Class: "9", Section: "C", Email: "ola@brightfuture.edu"})
	require.NoError(t, err)

	name := "Ola T."
	updated, err := svc.Update(ctx, scope, created.ID, models.TeacherPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ola T.", updated.Name)
	assert.Equal(t, "9", updated.Class)

	_, err = svc.Create(ctx, scope, models.Teacher{Name: "Bad Email", Class: "9", Section: "C", Email: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Get(ctx, scopeFor(stMarys), created.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestParentServiceChildren(t *testing.T) {
	store := newSeededStore()
	backend := mockBackend()
	students := NewStudentService(backend, store, nil, nil)
	svc := NewParentService(backend, store, students, nil, nil)
	ctx := context.Background()
	scope := scopeFor(stMarys)

	children, err := svc.Children(ctx, scope, "parent1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student1", "student2"}, studentIDs(children))

	_, err = svc.Create(ctx, scope, models.Parent{Phone: "555"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, scope, models.Parent{FatherName: "Cross School", ChildrenIDs: []string{"student4"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	created, err := svc.Create(ctx, scope, models.Parent{MotherName: "Ruth Brown", FatherName: "Sam Brown", ChildrenIDs: []string{"student3"}})
	require.NoError(t, err)

	children, err = svc.Children(ctx, scope, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"student3"}, studentIDs(children))
}

func TestSchoolServiceLookups(t *testing.T) {
	svc := NewSchoolService(mockBackend(), newSeededStore(), nil)
	ctx := context.Background()

	schools, err := svc.List(ctx, scopeFor(""))
	require.NoError(t, err)
	require.Len(t, schools, 2)

	school, err := svc.ByDomain(ctx, scopeFor(""), "brightfuture")
	require.NoError(t, err)
	assert.Equal(t, []models.Slot{models.SlotMorning, models.SlotAfternoon}, school.Settings.TimeSlots)

	_, err = svc.ByDomain(ctx, scopeFor(""), "nowhere")
	assert.ErrorIs(t, err, appErrors.ErrTenantNotFound)
}
