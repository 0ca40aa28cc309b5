package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/session"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// Mode selects whether the remote backend is attempted at all.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeReal Mode = "real"
)

// Source reports which path produced a result.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Scope is resolved once per request and threaded through every call.
type Scope struct {
	Tenant  models.TenantKey
	Token   string
	Session *session.Store
}

// Recorder receives per-call counters.
type Recorder interface {
	RecordGatewayCall(operation, source string)
	RecordRemoteFailure(operation string)
}

// Operation is one side of a dispatch.
type Operation[T any] func(ctx context.Context) (T, error)

// Result carries the value together with the path that produced it. RemoteErr
// holds the remote failure that was absorbed by the fallback, if any.
type Result[T any] struct {
	Value     T
	Source    Source
	RemoteErr error
}

// Gateway dispatches operations to the remote backend or the mock store.
type Gateway struct {
	mode     Mode
	enabled  bool
	logger   *zap.Logger
	recorder Recorder
}

// New constructs a Gateway. Unknown modes behave as mock.
func New(mode Mode, enabled bool, logger *zap.Logger, recorder Recorder) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode != ModeReal {
		mode = ModeMock
	}
	return &Gateway{mode: mode, enabled: enabled, logger: logger, recorder: recorder}
}

// Mode returns the configured mode.
func (g *Gateway) Mode() Mode {
	return g.mode
}

// Call runs remote in real mode and fallback when remote fails or in mock
// mode. A 401 from the backend signs the session out and is returned as
// ErrSessionExpired without running the fallback.
func Call[T any](ctx context.Context, g *Gateway, scope Scope, op string, remote, fallback Operation[T]) (Result[T], error) {
	var zero Result[T]
	if !g.enabled {
		return zero, appErrors.Clone(appErrors.ErrAPIDisabled, "api is disabled")
	}

	var remoteErr error
	if g.mode == ModeReal && remote != nil {
		value, err := remote(ctx)
		if err == nil {
			g.record(op, SourceRemote)
			return Result[T]{Value: value, Source: SourceRemote}, nil
		}
		if IsUnauthorized(err) {
			g.expire(ctx, scope, op)
			return zero, appErrors.Wrap(err, appErrors.ErrSessionExpired.Code, appErrors.ErrSessionExpired.Status, appErrors.ErrSessionExpired.Message)
		}
		remoteErr = err
		if g.recorder != nil {
			g.recorder.RecordRemoteFailure(op)
		}
		g.logger.Warn("remote call failed, using fallback",
			zap.String("operation", op),
			zap.String("tenant", string(scope.Tenant)),
			zap.Error(err),
		)
	}

	if fallback == nil {
		if remoteErr != nil {
			return zero, appErrors.Wrap(remoteErr, appErrors.ErrOperationFailed.Code, appErrors.ErrOperationFailed.Status, op+" failed")
		}
		return zero, appErrors.Clone(appErrors.ErrOperationFailed, op+" has no fallback")
	}

	value, err := fallback(ctx)
	if err != nil {
		if remoteErr == nil {
			return zero, err
		}
		return zero, appErrors.Wrap(errors.Join(remoteErr, err), appErrors.ErrOperationFailed.Code, appErrors.ErrOperationFailed.Status, op+" failed")
	}
	g.record(op, SourceFallback)
	return Result[T]{Value: value, Source: SourceFallback, RemoteErr: remoteErr}, nil
}

// Exec is Call for operations without a meaningful value.
func Exec(ctx context.Context, g *Gateway, scope Scope, op string, remote, fallback func(ctx context.Context) error) (Source, error) {
	wrap := func(fn func(ctx context.Context) error) Operation[struct{}] {
		if fn == nil {
			return nil
		}
		return func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx)
		}
	}
	res, err := Call(ctx, g, scope, op, wrap(remote), wrap(fallback))
	return res.Source, err
}

func (g *Gateway) record(op string, source Source) {
	if g.recorder != nil {
		g.recorder.RecordGatewayCall(op, string(source))
	}
}

func (g *Gateway) expire(ctx context.Context, scope Scope, op string) {
	g.logger.Info("backend rejected session, signing out",
		zap.String("operation", op),
		zap.String("tenant", string(scope.Tenant)),
	)
	if scope.Session == nil {
		return
	}
	if err := scope.Session.Clear(ctx); err != nil {
		g.logger.Warn("failed to clear expired session", zap.String("session_id", scope.Session.ID()), zap.Error(err))
	}
}
