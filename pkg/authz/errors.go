package authz

import "fmt"

// EvaluationError reports that the policy engine failed to produce a
// decision. It is an infrastructure failure, not a denial: enforcement
// treats it as not-allowed (fail-closed) but callers and operators can tell
// the two apart.
type EvaluationError struct {
	Access   string
	Resource string
	Err      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("policy evaluation failed for %s on %s: %v", e.Access, e.Resource, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
