package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("svc")
	if cfg.Enabled {
		t.Error("default config should be disabled")
	}
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestSampler(t *testing.T) {
	if sampler(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("rate 1 should always sample")
	}
	if sampler(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("rate 0 should never sample")
	}
	if sampler(0.25).Description() != sdktrace.TraceIDRatioBased(0.25).Description() {
		t.Error("fractional rate should be ratio based")
	}
}

func TestStartSpan_AttributesAndError(t *testing.T) {
	rec := installRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanTranslate)
	SetSpanAttribute(ctx, AttrTargetLanguage, "hi")
	SetSpanAttribute(ctx, AttrSequence, uint64(7))
	SetSpanAttribute(ctx, AttrTextLength, 5)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanTranslate {
		t.Errorf("name = %q", s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v, want error", s.Status().Code)
	}
	got := map[string]string{}
	for _, kv := range s.Attributes() {
		got[string(kv.Key)] = kv.Value.Emit()
	}
	if got[AttrTargetLanguage] != "hi" || got[AttrSequence] != "7" || got[AttrTextLength] != "5" {
		t.Errorf("attributes = %v", got)
	}
	if len(s.Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestSetSpanAttribute_NoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "k", "v")
	SetSpanError(context.Background(), errors.New("x"))
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	ctx := context.Background()
	m.RecordOperation(ctx, "microsoft", "execute", "ok", 10*time.Millisecond)
	m.RecordError(ctx, "execute", "microsoft")
	m.RecordStale(ctx, "result")
	m.RecordStale(ctx, "error")
	m.TranslateStarted(ctx)
	m.TranslateFinished(ctx)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if s, ok := md.Data.(metricdata.Sum[int64]); ok {
				var total int64
				for _, dp := range s.DataPoints {
					total += dp.Value
				}
				sums[md.Name] = total
			}
		}
	}
	if sums["operation.total"] != 1 || sums["error.total"] != 1 || sums["translate.stale.total"] != 2 {
		t.Errorf("sums = %v", sums)
	}
	if sums["translate.in_flight"] != 0 {
		t.Errorf("in_flight = %d, want 0", sums["translate.in_flight"])
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordOperation(ctx, "c", "o", "ok", time.Second)
	m.RecordError(ctx, "t", "c")
	m.RecordStale(ctx, "result")
	m.TranslateStarted(ctx)
	m.TranslateFinished(ctx)
}
