package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	baseHandler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(&traceHandler{baseHandler: baseHandler})
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}
	return record
}

func TestTraceHandler(t *testing.T) {
	t.Run("stamps records with trace and span ids", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		ctx, span := StartSpan(context.Background(), "LoggedOperation")
		defer span.End()

		var buf bytes.Buffer
		logger := newBufferedLogger(&buf)
		logger.InfoContext(ctx, "order created", "order_id", "order-1")

		record := decodeLogLine(t, &buf)
		if record["trace_id"] != TraceID(ctx) {
			t.Errorf("Expected trace_id %s, got %v", TraceID(ctx), record["trace_id"])
		}
		if record["span_id"] != SpanID(ctx) {
			t.Errorf("Expected span_id %s, got %v", SpanID(ctx), record["span_id"])
		}
		if record["order_id"] != "order-1" {
			t.Errorf("Expected order_id attribute, got %v", record["order_id"])
		}
	})

	t.Run("omits trace fields without an active span", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferedLogger(&buf)
		logger.Info("startup complete")

		record := decodeLogLine(t, &buf)
		if _, ok := record["trace_id"]; ok {
			t.Error("Expected no trace_id without an active span")
		}
		if record["msg"] != "startup complete" {
			t.Errorf("Expected message to pass through, got %v", record["msg"])
		}
	})

	t.Run("preserves WithAttrs and WithGroup", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferedLogger(&buf).With("component", "orders").WithGroup("db")
		logger.Info("query done", "rows", 3)

		record := decodeLogLine(t, &buf)
		if record["component"] != "orders" {
			t.Errorf("Expected component attribute, got %v", record["component"])
		}
		group, ok := record["db"].(map[string]any)
		if !ok {
			t.Fatalf("Expected db group, got %v", record["db"])
		}
		if group["rows"] != float64(3) {
			t.Errorf("Expected grouped rows attribute, got %v", group["rows"])
		}
	})
}
