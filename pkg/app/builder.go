// Package app wires configuration into a ready-to-use enforcement stack:
// policy engine, audit sink, identity resolver, decision delegate, and the
// enforcement surface. Hosts embed the adapter by calling Build once at
// startup; any failure here is fatal by design, because running with
// authorization silently disabled is worse than not running.
package app

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/lakegate/lakegate/internal/telemetry"
	"github.com/lakegate/lakegate/pkg/accesscontrol"
	"github.com/lakegate/lakegate/pkg/audit"
	"github.com/lakegate/lakegate/pkg/authz"
	"github.com/lakegate/lakegate/pkg/config"
	"github.com/lakegate/lakegate/pkg/identity"
)

// Stack is the assembled enforcement stack.
type Stack struct {
	// AccessControl is the enforcement surface the host calls per check.
	AccessControl *accesscontrol.AccessControl

	// Evaluator is the underlying decision delegate, exposed for callers
	// that evaluate raw requests (e.g. the check CLI command).
	Evaluator *authz.Evaluator

	// Resolver resolves principals into identity context.
	Resolver *identity.Resolver

	// Claims resolves identities from verified token claims, using the
	// configured groups claim. For hosts that authenticate with tokens
	// rather than principal strings.
	Claims *identity.ClaimsResolver

	closers []func() error
}

// Close releases resources held by the stack (e.g. the audit file).
func (s *Stack) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BuildOption configures Build.
type BuildOption func(*builder)

type builder struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	engine        authz.PolicyEngine
	groups        identity.GroupResolver
}

// WithLogger sets the logger for every component of the stack.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithMeterProvider enables decision metrics on the given provider.
func WithMeterProvider(provider metric.MeterProvider) BuildOption {
	return func(b *builder) {
		b.meterProvider = provider
	}
}

// WithPolicyEngine replaces the bundled Cedar engine with an external
// decision oracle.
func WithPolicyEngine(engine authz.PolicyEngine) BuildOption {
	return func(b *builder) {
		b.engine = engine
	}
}

// WithGroupResolver replaces the config-driven static group resolver with an
// external directory lookup.
func WithGroupResolver(groups identity.GroupResolver) BuildOption {
	return func(b *builder) {
		b.groups = groups
	}
}

// Build assembles the enforcement stack from validated configuration.
func Build(cfg *config.Config, opts ...BuildOption) (*Stack, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	b := &builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	engine := b.engine
	if engine == nil {
		var err error
		engine, err = buildEngine(cfg)
		if err != nil {
			return nil, err
		}
	}

	stack := &Stack{}
	sink, closer, err := buildSink(cfg, b.logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		stack.closers = append(stack.closers, closer)
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled && b.meterProvider != nil {
		metrics, err = telemetry.NewMetrics(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create decision metrics: %w", err)
		}
	}

	groups := b.groups
	if groups == nil {
		groups = identity.NewStaticResolver(cfg.Identity.StaticGroups)
	}

	evalOpts := []authz.EvaluatorOption{authz.WithLogger(b.logger)}
	if sink != nil {
		evalOpts = append(evalOpts, authz.WithAuditSink(sink))
	}
	if metrics != nil {
		evalOpts = append(evalOpts, authz.WithMetrics(metrics))
	}

	stack.Evaluator = authz.NewEvaluator(engine, evalOpts...)
	stack.Resolver = identity.NewResolver(groups)
	stack.Claims = identity.NewClaimsResolver(cfg.Identity.GroupsClaim)
	stack.AccessControl = accesscontrol.New(
		stack.Evaluator,
		stack.Resolver,
		accesscontrol.WithLogger(b.logger),
	)
	return stack, nil
}

func buildEngine(cfg *config.Config) (authz.PolicyEngine, error) {
	switch {
	case cfg.Policy.File != "":
		return authz.NewCedarEngineFromFile(cfg.Policy.File)
	case cfg.Policy.Inline != "":
		return authz.NewCedarEngine([]byte(cfg.Policy.Inline))
	default:
		return authz.NewCedarEngine(nil)
	}
}

func buildSink(cfg *config.Config, logger *slog.Logger) (audit.Sink, func() error, error) {
	var sinks audit.MultiSink
	var closer func() error
	for _, kind := range cfg.Audit.Sinks() {
		switch kind {
		case config.AuditSinkNone:
			return nil, nil, nil
		case config.AuditSinkFile:
			fileSink, err := audit.NewFileSink(cfg.Audit.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open audit sink: %w", err)
			}
			sinks = append(sinks, fileSink)
			closer = fileSink.Close
		default:
			sinks = append(sinks, audit.NewLogSink(logger))
		}
	}
	switch len(sinks) {
	case 0:
		// Unvalidated zero-value config; audit to the log rather than
		// silently nowhere.
		return audit.NewLogSink(logger), nil, nil
	case 1:
		return sinks[0], closer, nil
	default:
		return sinks, closer, nil
	}
}
