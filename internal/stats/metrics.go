package stats

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	reportsBuiltTotal   metric.Int64Counter
	reportBuildDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.reportsBuiltTotal, err = meter.Int64Counter(
		"stats_reports_built_total",
		metric.WithDescription("Total number of statistics reports built"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stats_reports_built_total counter: %w", err)
	}

	m.reportBuildDuration, err = meter.Float64Histogram(
		"stats_report_build_duration_seconds",
		metric.WithDescription("Duration of statistics report builds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stats_report_build_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordReportBuild(ctx context.Context, durationSeconds float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.reportsBuiltTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.reportBuildDuration.Record(ctx, durationSeconds)
}
