package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/session"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type recorderStub struct {
	calls    map[string]int
	failures map[string]int
}

func newRecorderStub() *recorderStub {
	return &recorderStub{calls: map[string]int{}, failures: map[string]int{}}
}

func (r *recorderStub) RecordGatewayCall(operation, source string) {
	r.calls[operation+"/"+source]++
}

func (r *recorderStub) RecordRemoteFailure(operation string) {
	r.failures[operation]++
}

func constant(v string) Operation[string] {
	return func(context.Context) (string, error) { return v, nil }
}

func failing(err error) Operation[string] {
	return func(context.Context) (string, error) { return "", err }
}

func TestCallMockModeRunsOnlyFallback(t *testing.T) {
	remoteCalled := false
	remote := func(context.Context) (string, error) {
		remoteCalled = true
		return "remote", nil
	}
	gw := New(ModeMock, true, nil, nil)

	res, err := Call(context.Background(), gw, Scope{}, "students.list", remote, constant("mock"))
	require.NoError(t, err)
	assert.False(t, remoteCalled)
	assert.Equal(t, "mock", res.Value)
	assert.Equal(t, SourceFallback, res.Source)
	assert.NoError(t, res.RemoteErr)
}

func TestCallRealModePrefersRemote(t *testing.T) {
	rec := newRecorderStub()
	fallbackCalled := false
	fallback := func(context.Context) (string, error) {
		fallbackCalled = true
		return "mock", nil
	}
	gw := New(ModeReal, true, nil, rec)

	res, err := Call(context.Background(), gw, Scope{}, "students.list", constant("remote"), fallback)
	require.NoError(t, err)
	assert.False(t, fallbackCalled)
	assert.Equal(t, "remote", res.Value)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, 1, rec.calls["students.list/remote"])
}

func TestCallFallsBackWhenRemoteFails(t *testing.T) {
	rec := newRecorderStub()
	boom := errors.New("connection refused")
	gw := New(ModeReal, true, nil, rec)

	res, err := Call(context.Background(), gw, Scope{Tenant: "stmarys"}, "fees.list", failing(boom), constant("mock"))
	require.NoError(t, err)
	assert.Equal(t, "mock", res.Value)
	assert.Equal(t, SourceFallback, res.Source)
	assert.ErrorIs(t, res.RemoteErr, boom)
	assert.Equal(t, 1, rec.failures["fees.list"])
	assert.Equal(t, 1, rec.calls["fees.list/fallback"])
}

func TestCallFallsBackOnServerError(t *testing.T) {
	gw := New(ModeReal, true, nil, nil)
	remote := failing(&StatusError{Method: http.MethodGet, Path: "/students", Status: http.StatusInternalServerError})

	res, err := Call(context.Background(), gw, Scope{}, "students.list", remote, constant("mock"))
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestCallBothFailReturnsOperationFailed(t *testing.T) {
	gw := New(ModeReal, true, nil, nil)
	notFound := appErrors.Clone(appErrors.ErrNotFound, "student not found")

	_, err := Call(context.Background(), gw, Scope{}, "students.get", failing(errors.New("timeout")), failing(notFound))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrOperationFailed)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCallMockModePropagatesFallbackError(t *testing.T) {
	gw := New(ModeMock, true, nil, nil)
	notFound := appErrors.Clone(appErrors.ErrNotFound, "student not found")

	_, err := Call(context.Background(), gw, Scope{}, "students.get", nil, failing(notFound))
	require.Error(t, err)
	assert.Equal(t, notFound, err)
}

func TestCallUnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewManager(nil, 0).Open("s1")
	require.NoError(t, store.Save(ctx, session.State{User: &models.User{ID: "1", Token: "expired"}}))

	fallbackCalled := false
	fallback := func(context.Context) (string, error) {
		fallbackCalled = true
		return "mock", nil
	}
	gw := New(ModeReal, true, nil, nil)
	remote := failing(&StatusError{Method: http.MethodGet, Path: "/students", Status: http.StatusUnauthorized})

	_, err := Call(ctx, gw, Scope{Token: "expired", Session: store}, "students.list", remote, fallback)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrSessionExpired)
	assert.False(t, fallbackCalled)

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, state.Authenticated())
}

func TestCallDisabled(t *testing.T) {
	gw := New(ModeMock, false, nil, nil)
	_, err := Call(context.Background(), gw, Scope{}, "schools.list", nil, constant("mock"))
	assert.ErrorIs(t, err, appErrors.ErrAPIDisabled)
}

func TestExecReportsSource(t *testing.T) {
	gw := New(ModeReal, true, nil, nil)
	source, err := Exec(context.Background(), gw, Scope{}, "logout",
		func(context.Context) error { return errors.New("offline") },
		func(context.Context) error { return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, source)
}
