package accesscontrol

import "fmt"

// DeniedError is the denial signal raised by deny-on-false entry points. It
// names the exact sub-action and the resource so the query engine can
// produce an actionable error, even where several operations share one
// policy action category.
type DeniedError struct {
	// Operation is the caller-visible sub-action, e.g. "rename schema".
	Operation string

	// Resource identifies what the operation targeted.
	Resource string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("access denied: cannot %s %s", e.Operation, e.Resource)
}

func deny(operation, res string) *DeniedError {
	return &DeniedError{Operation: operation, Resource: res}
}
