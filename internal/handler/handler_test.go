package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/middleware"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/repository/mockstore"
	"github.com/noah-isme/school-portal/internal/service"
)

var (
	adminUser   = &models.User{ID: "1", Role: models.RoleAdmin, SchoolID: "school1"}
	teacherUser = &models.User{ID: "2", Role: models.RoleTeacher, SchoolID: "school1"}
	parentUser1 = &models.User{ID: "3", Role: models.RoleParent, ParentID: "parent1", Children: []string{"student1", "student2"}, SchoolID: "school1"}
)

type testServices struct {
	students   *service.StudentService
	attendance *service.AttendanceService
	exams      *service.ExamResultService
	queries    *service.QueryService
	capture    *service.CaptureService
}

func newTestServices() testServices {
	backend := service.NewBackend(gateway.New(gateway.ModeMock, true, nil, nil), nil)
	store := mockstore.NewSeeded(mockstore.Options{
		Now: func() time.Time { return time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC) },
	})
	students := service.NewStudentService(backend, store, nil, nil)
	attendance := service.NewAttendanceService(backend, store, nil, nil)
	return testServices{
		students:   students,
		attendance: attendance,
		exams:      service.NewExamResultService(backend, store, nil, nil),
		queries:    service.NewQueryService(backend, store, nil, nil),
		capture:    service.NewCaptureService(students, attendance, nil, nil),
	}
}

// newContext builds a request context as the JWT middleware leaves it.
func newContext(method, target string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			_ = json.NewEncoder(&buf).Encode(v)
		}
	}
	req, _ := http.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	c.Set(middleware.ContextScopeKey, gateway.Scope{Tenant: "stmarys"})
	if user != nil {
		c.Set(middleware.ContextUserKey, &models.ConsoleClaims{UserID: user.ID, Role: user.Role, SessionID: "sess-" + user.ID, Tenant: "stmarys"})
		c.Set(middleware.ContextSessionUserKey, user)
	}
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Error.Code
}

func TestCanSeeStudent(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", nil, teacherUser)
	assert.True(t, canSeeStudent(c, "student3"))

	c, _ = newContext(http.MethodGet, "/", nil, parentUser1)
	assert.True(t, canSeeStudent(c, "student1"))

	c, w := newContext(http.MethodGet, "/", nil, parentUser1)
	assert.False(t, canSeeStudent(c, "student3"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", `{"name":`, adminUser)
	var dest models.Student
	assert.False(t, bindJSON(c, &dest))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestStudentHandlerListForcesParentFilter(t *testing.T) {
	h := NewStudentHandler(newTestServices().students)

	c, w := newContext(http.MethodGet, "/students?parent_id=parent2", nil, parentUser1)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var students []models.Student
	decodeData(t, w, &students)
	require.Len(t, students, 2)
	for _, s := range students {
		assert.Equal(t, "parent1", s.ParentID)
	}
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	h := NewStudentHandler(newTestServices().students)

	c, w := newContext(http.MethodGet, "/students/missing", nil, adminUser)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExamResultHandlerListRequiresStudentForParents(t *testing.T) {
	h := NewExamResultHandler(newTestServices().exams)

	c, w := newContext(http.MethodGet, "/exam-results", nil, parentUser1)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newContext(http.MethodGet, "/exam-results?student_id=student1", nil, parentUser1)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	var results []models.ExamResult
	decodeData(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "exam1", results[0].ID)
}

func TestQueryHandlerCreateUsesSignedInParent(t *testing.T) {
	h := NewQueryHandler(newTestServices().queries)

	c, w := newContext(http.MethodPost, "/queries", map[string]string{
		"parent_id":      "parent2",
		"student_id":     "student1",
		"recipient_type": "teacher",
		"subject":        "Homework",
		"message":        "How much homework is expected?",
	}, parentUser1)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var query models.Query
	decodeData(t, w, &query)
	assert.Equal(t, "parent1", query.ParentID)
	assert.Equal(t, models.QueryPending, query.Status)
}

func TestQueryHandlerGetHidesOtherParentsQueries(t *testing.T) {
	h := NewQueryHandler(newTestServices().queries)
	other := &models.User{ID: "9", Role: models.RoleParent, ParentID: "parent2", SchoolID: "school1"}

	c, w := newContext(http.MethodGet, "/queries/query1", nil, other)
	c.Params = gin.Params{{Key: "id", Value: "query1"}}
	h.Get(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCaptureHandlerPresentWithoutPhoto(t *testing.T) {
	h := NewCaptureHandler(newTestServices().capture)

	c, w := newContext(http.MethodPost, "/attendance/capture/configure", map[string]string{"date": "2024-01-20", "slot": "morning"}, teacherUser)
	h.Configure(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c, w = newContext(http.MethodPost, "/attendance/capture/select", map[string]string{"class": "10", "section": "A"}, teacherUser)
	h.Select(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c, w = newContext(http.MethodPost, "/attendance/capture/present", nil, teacherUser)
	h.Present(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	c, w = newContext(http.MethodPost, "/attendance/capture/configure", map[string]string{"slot": "morning"}, teacherUser)
	h.Configure(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
