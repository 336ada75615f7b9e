// Package identity resolves the acting principal of an authorization check
// into the short username and group memberships the policy engine matches
// rules against. Group lookup is an injected capability; this package owns
// no directory mechanics and caches nothing across checks.
package identity

import (
	"context"
	"fmt"
	"strings"
)

// Identity is the resolved requester context for a single check.
type Identity struct {
	// User is the short username, with any realm or instance qualifiers
	// stripped from the raw principal.
	User string

	// Groups is the resolved group membership set. Empty, never nil: the
	// decision layer treats "no groups" and "unresolved" identically.
	Groups []string
}

// GroupResolver looks up group memberships for a user. Implementations may
// consult an external directory and may fail; a failure is distinct from an
// empty membership set.
type GroupResolver interface {
	GroupsOf(ctx context.Context, user string) ([]string, error)
}

// ResolutionError reports that the identity of the requester could not be
// determined. It is an internal error, not an authorization denial.
type ResolutionError struct {
	Principal string
	Err       error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to resolve identity %q", e.Principal)
	}
	return fmt.Sprintf("failed to resolve identity %q: %v", e.Principal, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolver derives per-check identity context from a raw principal using an
// injected group resolver.
type Resolver struct {
	groups GroupResolver
}

// NewResolver creates a Resolver. A nil group resolver yields identities
// with empty group sets.
func NewResolver(groups GroupResolver) *Resolver {
	return &Resolver{groups: groups}
}

// Resolve derives the short username from the raw principal and looks up its
// groups. Lookup failures are wrapped in a ResolutionError and never coerced
// into an empty group set.
func (r *Resolver) Resolve(ctx context.Context, principal string) (Identity, error) {
	short := ShortName(principal)
	if short == "" {
		return Identity{}, &ResolutionError{Principal: principal, Err: fmt.Errorf("empty principal")}
	}

	if r.groups == nil {
		return Identity{User: short, Groups: []string{}}, nil
	}

	groups, err := r.groups.GroupsOf(ctx, short)
	if err != nil {
		return Identity{}, &ResolutionError{Principal: principal, Err: err}
	}
	if groups == nil {
		groups = []string{}
	}
	return Identity{User: short, Groups: groups}, nil
}

// ShortName strips realm and instance qualifiers from a Kerberos-style
// principal: "alice@EXAMPLE.COM" and "alice/host@EXAMPLE.COM" both yield
// "alice". A plain username passes through unchanged.
func ShortName(principal string) string {
	name := principal
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}
	return name
}
