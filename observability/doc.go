// Package observability wires OpenTelemetry tracing and metrics.
//
//	shutdown, err := observability.Setup(ctx, cfg)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranslate)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("polyglot"))
//	metrics.RecordOperation(ctx, "microsoft", "execute", "ok", d)
//
// A nil *Metrics is valid and records nothing.
package observability
