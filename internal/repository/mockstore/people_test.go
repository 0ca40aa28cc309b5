package mockstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func TestCreateStudentLinksParent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	st, err := store.CreateStudent(ctx, stMarys, models.Student{Name: "Eve", Class: "9", Section: "B", ParentID: "parent2"})
	require.NoError(t, err)

	parent, err := store.Parent(ctx, stMarys, "parent2")
	require.NoError(t, err)
	assert.Contains(t, parent.ChildrenIDs, st.ID)
}

func TestCreateStudentRejectsForeignParent(t *testing.T) {
	_, err := newTestStore().CreateStudent(context.Background(), stMarys, models.Student{Name: "Eve", Class: "9", Section: "B", ParentID: "parent3"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestUpdateStudentMovesBetweenParents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	target := "parent2"

	_, err := store.UpdateStudent(ctx, stMarys, "student2", models.StudentPatch{ParentID: &target})
	require.NoError(t, err)

	oldParent, err := store.Parent(ctx, stMarys, "parent1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student1"}, oldParent.ChildrenIDs)

	newParent, err := store.Parent(ctx, stMarys, "parent2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"student3", "student2"}, newParent.ChildrenIDs)

	kids, err := store.StudentsByParent(ctx, stMarys, "parent2")
	require.NoError(t, err)
	assert.Len(t, kids, 2)
}

func TestUpdateParentChildrenKeepsStudentsInSync(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	children := []string{"student1", "student3"}

	updated, err := store.UpdateParent(ctx, stMarys, "parent1", models.ParentPatch{ChildrenIDs: &children})
	require.NoError(t, err)
	assert.Equal(t, children, updated.ChildrenIDs)

	released, err := store.Student(ctx, stMarys, "student2")
	require.NoError(t, err)
	assert.Empty(t, released.ParentID)

	claimed, err := store.Student(ctx, stMarys, "student3")
	require.NoError(t, err)
	assert.Equal(t, "parent1", claimed.ParentID)

	previous, err := store.Parent(ctx, stMarys, "parent2")
	require.NoError(t, err)
	assert.Empty(t, previous.ChildrenIDs)
}

func TestCreateParentRejectsForeignChildren(t *testing.T) {
	_, err := newTestStore().CreateParent(context.Background(), stMarys, models.Parent{FatherName: "X", ChildrenIDs: []string{"student4"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
