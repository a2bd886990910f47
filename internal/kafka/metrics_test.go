package kafka

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordPublish(t *testing.T) {
	t.Run("records latency and counts per topic and status", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		metrics, err := NewMetrics(mp.Meter("test"))
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		ctx := context.Background()
		metrics.RecordPublish(ctx, "order_created", 0.2, true)
		metrics.RecordPublish(ctx, "order_deleted", 0.3, false)

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			t.Fatalf("Failed to collect metrics: %v", err)
		}

		byName := map[string]metricdata.Metrics{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				byName[m.Name] = m
			}
		}

		latency, ok := byName["kafka_producer_latency_seconds"]
		if !ok {
			t.Fatal("kafka_producer_latency_seconds metric not found")
		}
		histogram, ok := latency.Data.(metricdata.Histogram[float64])
		if !ok {
			t.Fatal("Expected Histogram[float64] data type")
		}
		if len(histogram.DataPoints) != 2 {
			t.Errorf("Expected 2 latency data points, got %d", len(histogram.DataPoints))
		}

		published, ok := byName["kafka_events_published_total"]
		if !ok {
			t.Fatal("kafka_events_published_total metric not found")
		}
		sum, ok := published.Data.(metricdata.Sum[int64])
		if !ok {
			t.Fatal("Expected Sum[int64] data type")
		}
		if len(sum.DataPoints) != 2 {
			t.Errorf("Expected 2 counter data points, got %d", len(sum.DataPoints))
		}
	})
}
