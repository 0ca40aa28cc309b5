package service

import (
	"context"
	"net/url"

	"github.com/noah-isme/school-portal/internal/gateway"
)

// remoteClient is the subset of gateway.Client the services use.
type remoteClient interface {
	Get(ctx context.Context, scope gateway.Scope, path string, query url.Values, dest interface{}) error
	Do(ctx context.Context, scope gateway.Scope, method, path string, body, dest interface{}) error
}

// Backend bundles the dispatcher with the remote client shared by every
// domain service. A nil client makes every call use the mock store.
type Backend struct {
	gw     *gateway.Gateway
	client remoteClient
}

// NewBackend constructs a Backend.
func NewBackend(gw *gateway.Gateway, client remoteClient) Backend {
	return Backend{gw: gw, client: client}
}

type remoteFactory[T any] func(c remoteClient) gateway.Operation[T]

// dispatch routes one operation through the gateway and unwraps the value.
func dispatch[T any](ctx context.Context, b Backend, scope gateway.Scope, op string, remote remoteFactory[T], fallback gateway.Operation[T]) (T, error) {
	var remoteOp gateway.Operation[T]
	if b.client != nil && remote != nil {
		remoteOp = remote(b.client)
	}
	res, err := gateway.Call(ctx, b.gw, scope, op, remoteOp, fallback)
	if err != nil {
		var zero T
		return zero, err
	}
	return res.Value, nil
}

func remoteGet[T any](scope gateway.Scope, path string, query url.Values) remoteFactory[T] {
	return func(c remoteClient) gateway.Operation[T] {
		return func(ctx context.Context) (T, error) {
			var out T
			err := c.Get(ctx, scope, path, query, &out)
			return out, err
		}
	}
}

func remoteSend[T any](scope gateway.Scope, method, path string, body interface{}) remoteFactory[T] {
	return func(c remoteClient) gateway.Operation[T] {
		return func(ctx context.Context) (T, error) {
			var out T
			err := c.Do(ctx, scope, method, path, body, &out)
			return out, err
		}
	}
}

func queryParams(pairs ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	return values
}
