// Package audit defines the record emitted for every evaluated authorization
// request and the sink interface it is delivered to. Sinks are best-effort:
// a recording failure never changes an authorization outcome. The record
// schema downstream systems persist is theirs to own; this package only
// carries the decision context across the boundary.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record captures one evaluated access request and its outcome.
type Record struct {
	// ID uniquely identifies the record across sinks.
	ID string `json:"id"`

	// Time is when the decision was produced, in UTC.
	Time time.Time `json:"time"`

	// User is the short username of the requester.
	User string `json:"user"`

	// Groups is the requester's resolved group set.
	Groups []string `json:"groups"`

	// Resource is the level-name to value mapping of the checked resource.
	Resource map[string]string `json:"resource"`

	// Access is the action token that was evaluated.
	Access string `json:"access"`

	// Allowed is the decision outcome. False for evaluation failures.
	Allowed bool `json:"allowed"`

	// Reasons lists policy identifiers that contributed to the decision.
	Reasons []string `json:"reasons,omitempty"`

	// Error carries the evaluation failure, if the engine could not decide.
	Error string `json:"error,omitempty"`
}

// NewRecord stamps a record with a fresh ID and the current time.
func NewRecord(user string, groups []string, res map[string]string, access string, allowed bool, reasons []string) Record {
	return Record{
		ID:       uuid.NewString(),
		Time:     time.Now().UTC(),
		User:     user,
		Groups:   groups,
		Resource: res,
		Access:   access,
		Allowed:  allowed,
		Reasons:  reasons,
	}
}

// Sink receives audit records. Implementations must be safe for concurrent
// use; callers treat Record as fire-and-forget.
type Sink interface {
	Record(ctx context.Context, rec Record) error
}
