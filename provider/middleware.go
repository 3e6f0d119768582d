package provider

import (
	"context"
	"slices"
	"time"

	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/observability"
)

// Next is the inner Execute as seen by a middleware.
type Next[I, O any] func(ctx context.Context, input I) (O, error)

// Middleware wraps a RequestResponse.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes mws so that mws[0] is outermost: Chain(a, b)(p) is a(b(p)).
func Chain[I, O any](mws ...Middleware[I, O]) Middleware[I, O] {
	return func(rr RequestResponse[I, O]) RequestResponse[I, O] {
		for _, mw := range slices.Backward(mws) {
			rr = mw(rr)
		}
		return rr
	}
}

// Around builds a Middleware from fn, which receives the wrapped provider's
// name and decides when to call next. Name and IsAvailable pass through.
func Around[I, O any](fn func(ctx context.Context, name string, input I, next Next[I, O]) (O, error)) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &around[I, O]{inner: inner, fn: fn}
	}
}

type around[I, O any] struct {
	inner RequestResponse[I, O]
	fn    func(ctx context.Context, name string, input I, next Next[I, O]) (O, error)
}

func (a *around[I, O]) Name() string                         { return a.inner.Name() }
func (a *around[I, O]) IsAvailable(ctx context.Context) bool { return a.inner.IsAvailable(ctx) }

func (a *around[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return a.fn(ctx, a.inner.Name(), input, a.inner.Execute)
}

// WithLogging logs every call with its duration. Failures log at error,
// successes and caller cancellations at debug.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return Around[I, O](func(ctx context.Context, name string, input I, next Next[I, O]) (O, error) {
		start := time.Now()
		out, err := next(ctx, input)

		fields := logger.DurationFields("execute", time.Since(start))
		fields[logger.FieldProvider] = name
		switch {
		case err == nil:
			log.Debug("provider execute ok", fields)
		case ctx.Err() != nil:
			// superseded request
			fields[logger.FieldError] = err.Error()
			log.Debug("provider execute canceled", fields)
		default:
			fields[logger.FieldError] = err.Error()
			log.Error("provider execute failed", fields)
		}
		return out, err
	})
}

// WithMetrics records a call count and duration per provider, plus an
// error count on failure. A nil metrics records nothing.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return Around[I, O](func(ctx context.Context, name string, input I, next Next[I, O]) (O, error) {
		start := time.Now()
		out, err := next(ctx, input)

		status := "ok"
		if err != nil {
			status = "error"
			metrics.RecordError(ctx, "execute", name)
		}
		metrics.RecordOperation(ctx, name, "execute", status, time.Since(start))
		return out, err
	})
}

// WithTracing runs each call in a span named "<service>.<provider>".
func WithTracing[I, O any](service string) Middleware[I, O] {
	return Around[I, O](func(ctx context.Context, name string, input I, next Next[I, O]) (O, error) {
		ctx, span := observability.StartSpan(ctx, service+"."+name)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrServiceName, service)
		observability.SetSpanAttribute(ctx, observability.AttrOperationName, name)

		out, err := next(ctx, input)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
		return out, err
	})
}
