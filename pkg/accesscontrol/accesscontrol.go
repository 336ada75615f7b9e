// Package accesscontrol is the enforcement surface of the adapter: one entry
// point per controllable query-engine operation. Every entry point follows
// one of three patterns over a shared permission check (deny-on-false for
// single targets, AND-fan-out for column sets, filter for candidate
// collections) so the hierarchy, identity, and audit semantics live in one
// place instead of per operation.
//
// Known enforcement gap, kept intentionally: listing column metadata
// (CheckCanShowColumns) and filtering column metadata (FilterColumns) pass
// through without a policy check. Whether columns should be individually
// gated once table access is granted is an open product question; until it
// is answered these stay permissive rather than silently changing behavior.
package accesscontrol

import (
	"context"
	"log/slog"

	"github.com/lakegate/lakegate/pkg/authz"
	"github.com/lakegate/lakegate/pkg/identity"
	"github.com/lakegate/lakegate/pkg/resource"
)

// AccessControl exposes the enforcement entry points. It is stateless apart
// from its injected collaborators and safe for concurrent use; each check is
// a single-shot build/evaluate/enforce cycle.
type AccessControl struct {
	evaluator *authz.Evaluator
	resolver  *identity.Resolver
	logger    *slog.Logger
}

// Option configures an AccessControl.
type Option func(*AccessControl)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *AccessControl) {
		a.logger = logger
	}
}

// New creates an AccessControl over the given decision delegate and identity
// resolver.
func New(evaluator *authz.Evaluator, resolver *identity.Resolver, opts ...Option) *AccessControl {
	if evaluator == nil {
		panic("accesscontrol: New requires an evaluator")
	}
	if resolver == nil {
		resolver = identity.NewResolver(nil)
	}

	a := &AccessControl{
		evaluator: evaluator,
		resolver:  resolver,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// checkPermission resolves the principal and evaluates one request. An
// error is either an identity resolution failure or an evaluation failure;
// both propagate as themselves and both mean access is not granted.
func (a *AccessControl) checkPermission(ctx context.Context, principal string, res resource.Resource, action authz.Action) (bool, error) {
	id, err := a.resolver.Resolve(ctx, principal)
	if err != nil {
		return false, err
	}

	decision, err := a.evaluator.Evaluate(ctx, authz.NewRequest(res, action, id))
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

// require is the deny-on-false pattern: evaluate one resource and raise the
// given denial when the outcome is not allowed.
func (a *AccessControl) require(ctx context.Context, principal string, res resource.Resource, action authz.Action, denial *DeniedError) error {
	allowed, err := a.checkPermission(ctx, principal, res, action)
	if err != nil {
		return err
	}
	if !allowed {
		a.logger.InfoContext(ctx, "authorization denied",
			"operation", denial.Operation,
			"resource", denial.Resource,
			"principal", principal,
		)
		return denial
	}
	return nil
}

// requireEach is the fan-out AND pattern: every resource must be allowed,
// first denial wins. Used for column-scoped checks, where a single denied
// column denies the whole statement.
func (a *AccessControl) requireEach(ctx context.Context, principal string, resources []resource.Resource, action authz.Action, denial *DeniedError) error {
	for _, res := range resources {
		allowed, err := a.checkPermission(ctx, principal, res, action)
		if err != nil {
			return err
		}
		if !allowed {
			a.logger.InfoContext(ctx, "authorization denied",
				"operation", denial.Operation,
				"resource", denial.Resource,
				"denied_for", res.String(),
				"principal", principal,
			)
			return denial
		}
	}
	return nil
}

// filterAllowed is the filter pattern: keep the candidates the principal may
// select from. Candidates are treated as a set, so duplicates collapse, and
// an evaluation or resolution failure fails the whole filter rather than
// silently dropping or leaking candidates.
func filterAllowed[T comparable](ctx context.Context, a *AccessControl, principal string, candidates []T, build func(T) resource.Resource) ([]T, error) {
	seen := make(map[T]struct{}, len(candidates))
	filtered := make([]T, 0, len(candidates))
	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		allowed, err := a.checkPermission(ctx, principal, build(candidate), authz.ActionSelect)
		if err != nil {
			return nil, err
		}
		if allowed {
			filtered = append(filtered, candidate)
		}
	}
	return filtered, nil
}
