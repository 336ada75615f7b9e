// Package telemetry provides OpenTelemetry instrumentation for the
// enforcement layer.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the name used for the enforcement metrics meter.
const MeterName = "github.com/lakegate/lakegate"

// Metrics holds the OpenTelemetry instruments for decision metrics.
type Metrics struct {
	decisions        metric.Int64Counter
	evaluationErrors metric.Int64Counter
	auditFailures    metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(MeterName)

	decisions, err := meter.Int64Counter(
		"lakegate_decisions_total",
		metric.WithDescription("Number of authorization decisions, by outcome"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	evaluationErrors, err := meter.Int64Counter(
		"lakegate_evaluation_errors_total",
		metric.WithDescription("Number of policy evaluations that failed to produce a decision"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	auditFailures, err := meter.Int64Counter(
		"lakegate_audit_failures_total",
		metric.WithDescription("Number of audit records that could not be delivered"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		decisions:        decisions,
		evaluationErrors: evaluationErrors,
		auditFailures:    auditFailures,
	}, nil
}

// RecordDecision counts one completed authorization decision.
func (m *Metrics) RecordDecision(ctx context.Context, allowed bool) {
	if m == nil || m.decisions == nil {
		return
	}

	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordEvaluationError counts one failed policy evaluation.
func (m *Metrics) RecordEvaluationError(ctx context.Context) {
	if m == nil || m.evaluationErrors == nil {
		return
	}
	m.evaluationErrors.Add(ctx, 1)
}

// RecordAuditFailure counts one undeliverable audit record.
func (m *Metrics) RecordAuditFailure(ctx context.Context) {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.Add(ctx, 1)
}
