// Package authz builds normalized access requests and delegates allow/deny
// decisions to a policy engine. The engine is an opaque oracle behind the
// PolicyEngine interface; a Cedar-backed implementation ships in this
// package as the default.
package authz

import (
	"context"

	"github.com/lakegate/lakegate/pkg/identity"
	"github.com/lakegate/lakegate/pkg/resource"
)

//go:generate mockgen -destination=mocks/mock_authz.go -package=mocks -source=authorizer.go

// Request is one normalized access request: who wants which access on what.
// It is immutable once built and evaluated exactly once.
type Request struct {
	// Resource is the hierarchical data object being checked.
	Resource resource.Resource

	// Access is the action token after mapping (e.g. "select", "_any").
	Access string

	// User is the requester's short username.
	User string

	// Groups is the requester's resolved group set. Empty means no
	// group-based rules apply.
	Groups []string
}

// NewRequest composes a resource, an action, and a resolved identity into a
// Request. Pure composition; no decision logic.
func NewRequest(res resource.Resource, action Action, id identity.Identity) Request {
	return Request{
		Resource: res,
		Access:   action.Token(),
		User:     id.User,
		Groups:   id.Groups,
	}
}

// Decision is the outcome of evaluating one Request.
type Decision struct {
	// Allowed indicates whether the request is permitted.
	Allowed bool

	// Reasons provides policy IDs that contributed to the decision.
	Reasons []string
}

// PolicyEngine is the external decision oracle. Implementations must be safe
// for concurrent use; a returned error means the engine could not produce a
// decision at all, which is distinct from a deny.
type PolicyEngine interface {
	IsAccessAllowed(ctx context.Context, req Request) (Decision, error)
}
