package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func TestQueryServiceLifecycle(t *testing.T) {
	svc := NewQueryService(mockBackend(), newSeededStore(), nil, nil)
	ctx := context.Background()
	scope := scopeFor(stMarys)

	created, err := svc.Create(ctx, scope, models.Query{
		ParentID:      "parent1",
		StudentID:     "student2",
		RecipientType: models.RecipientAdmin,
		Subject:       "Bus route",
		Message:       "Has the bus route changed?",
		Status:        models.QueryClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QueryPending, created.Status)

	_, err = svc.SetStatus(ctx, scope, created.ID, models.QueryResolved)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	responded, err := svc.Respond(ctx, scope, created.ID, "  Yes, from next week.  ")
	require.NoError(t, err)
	assert.Equal(t, models.QueryResponded, responded.Status)
	assert.Equal(t, "Yes, from next week.", responded.Response)
	require.NotNil(t, responded.ResponseDate)
	assert.Equal(t, "2024-01-20", *responded.ResponseDate)

	resolved, err := svc.SetStatus(ctx, scope, created.ID, models.QueryResolved)
	require.NoError(t, err)
	assert.Equal(t, models.QueryResolved, resolved.Status)

	_, err = svc.Respond(ctx, scope, created.ID, "late answer")
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	closed, err := svc.SetStatus(ctx, scope, created.ID, models.QueryClosed)
	require.NoError(t, err)
	assert.Equal(t, models.QueryClosed, closed.Status)
}

func TestQueryServiceRejectsBadInput(t *testing.T) {
	svc := NewQueryService(mockBackend(), newSeededStore(), nil, nil)
	ctx := context.Background()
	scope := scopeFor(stMarys)

	_, err := svc.Respond(ctx, scope, "query1", "   ")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.SetStatus(ctx, scope, "query1", models.QueryResponded)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, scope, models.Query{ParentID: "parent1", StudentID: "student1", RecipientType: "principal", Subject: "x", Message: "y"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.ByParent(ctx, scope, "")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestQueryServiceByParentIsTenantScoped(t *testing.T) {
	svc := NewQueryService(mockBackend(), newSeededStore(), nil, nil)
	ctx := context.Background()

	queries, err := svc.ByParent(ctx, scopeFor(stMarys), "parent1")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "query1", queries[0].ID)

	queries, err = svc.ByParent(ctx, scopeFor(brightFuture), "parent1")
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestQueryServiceRemoteRespond(t *testing.T) {
	remote := &fakeRemote{respond: func(call remoteCall) (interface{}, error) {
		return models.Query{ID: "query1", Status: models.QueryResponded, Response: "ok"}, nil
	}}
	svc := NewQueryService(realBackend(remote, nil), newSeededStore(), nil, nil)

	query, err := svc.Respond(context.Background(), scopeFor(stMarys), "query1", "ok")
	require.NoError(t, err)
	assert.Equal(t, models.QueryResponded, query.Status)

	calls := remote.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/queries/query1/respond", calls[0].Path)
	assert.Equal(t, respondRequest{Response: "ok"}, calls[0].Body)
}
