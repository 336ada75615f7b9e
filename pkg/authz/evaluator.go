package authz

import (
	"context"
	"log/slog"

	"github.com/lakegate/lakegate/internal/telemetry"
	"github.com/lakegate/lakegate/pkg/audit"
)

// Evaluator is the decision delegate: it sends requests to the policy
// engine, audits every outcome, and keeps evaluation failures distinct from
// denials. All collaborators are supplied at construction and the Evaluator
// holds no per-check state, so one instance serves concurrent checks.
type Evaluator struct {
	engine  PolicyEngine
	sink    audit.Sink
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithAuditSink sets the audit sink. Without one, decisions are not audited.
func WithAuditSink(sink audit.Sink) EvaluatorOption {
	return func(e *Evaluator) {
		e.sink = sink
	}
}

// WithMetrics sets the decision metrics.
func WithMetrics(metrics *telemetry.Metrics) EvaluatorOption {
	return func(e *Evaluator) {
		e.metrics = metrics
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an Evaluator over the given policy engine. A nil
// engine is a programming error: the process must never run with
// authorization silently disabled.
func NewEvaluator(engine PolicyEngine, opts ...EvaluatorOption) *Evaluator {
	if engine == nil {
		panic("authz: NewEvaluator requires a policy engine")
	}

	e := &Evaluator{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate asks the policy engine to decide the request and audits the
// outcome. Exactly one audit record is produced per evaluated request,
// allowed or denied; an engine failure is audited as not-allowed and
// returned as an *EvaluationError.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Decision, error) {
	decision, err := e.engine.IsAccessAllowed(ctx, req)
	if err != nil {
		evalErr := &EvaluationError{
			Access:   req.Access,
			Resource: req.Resource.String(),
			Err:      err,
		}
		e.logger.ErrorContext(ctx, "policy evaluation failed",
			"error", err,
			"access", req.Access,
			"resource", req.Resource.String(),
			"user", req.User,
		)
		e.metrics.RecordEvaluationError(ctx)
		e.record(ctx, req, Decision{}, evalErr)
		return Decision{}, evalErr
	}

	e.logger.DebugContext(ctx, "authorization decision",
		"access", req.Access,
		"resource", req.Resource.String(),
		"user", req.User,
		"groups", req.Groups,
		"allowed", decision.Allowed,
		"reasons", decision.Reasons,
	)
	e.metrics.RecordDecision(ctx, decision.Allowed)
	e.record(ctx, req, decision, nil)
	return decision, nil
}

// record delivers one audit record for the evaluated request. Audit delivery
// is best-effort: a sink failure is logged and counted but never alters the
// decision.
func (e *Evaluator) record(ctx context.Context, req Request, decision Decision, evalErr error) {
	if e.sink == nil {
		return
	}

	rec := audit.NewRecord(req.User, req.Groups, req.Resource.Levels(), req.Access, decision.Allowed, decision.Reasons)
	if evalErr != nil {
		rec.Error = evalErr.Error()
	}

	if err := e.sink.Record(ctx, rec); err != nil {
		e.logger.ErrorContext(ctx, "failed to deliver audit record",
			"error", err,
			"audit_id", rec.ID,
			"user", req.User,
			"resource", req.Resource.String(),
		)
		e.metrics.RecordAuditFailure(ctx)
	}
}
