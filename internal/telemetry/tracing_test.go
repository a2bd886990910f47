package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := newRecordingTracer(t)

	ctx, span := StartSpan(context.Background(), "TestOperation")
	AddSpanAttributes(span, attribute.String("order.id", "order-1"))
	AddSpanEvent(span, "cache_miss")
	SetSpanSuccess(span)
	span.End()

	if TraceID(ctx) == "" {
		t.Error("Expected trace id on span context")
	}
	if SpanID(ctx) == "" {
		t.Error("Expected span id on span context")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}

	recorded := spans[0]
	if recorded.Name() != "TestOperation" {
		t.Errorf("Expected span name TestOperation, got %s", recorded.Name())
	}
	if recorded.Status().Code != codes.Ok {
		t.Errorf("Expected Ok status, got %v", recorded.Status().Code)
	}
	if len(recorded.Events()) != 1 || recorded.Events()[0].Name != "cache_miss" {
		t.Errorf("Expected cache_miss event, got %+v", recorded.Events())
	}
}

func TestRecordSpanError(t *testing.T) {
	recorder := newRecordingTracer(t)

	_, span := StartSpan(context.Background(), "FailingOperation")
	RecordSpanError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("Expected Error status, got %v", spans[0].Status().Code)
	}
	if len(spans[0].Events()) == 0 {
		t.Error("Expected recorded error event")
	}
}

func TestSpanHelpersTolerateNil(t *testing.T) {
	AddSpanAttributes(nil, attribute.String("k", "v"))
	AddSpanEvent(nil, "noop")
	RecordSpanError(nil, errors.New("ignored"))
	SetSpanSuccess(nil)

	if got := TraceID(context.Background()); got != "" {
		t.Errorf("Expected empty trace id without a span, got %s", got)
	}
}
