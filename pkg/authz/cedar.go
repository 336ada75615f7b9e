package authz

import (
	"context"
	"fmt"
	"os"

	cedar "github.com/cedar-policy/cedar-go"

	"github.com/lakegate/lakegate/pkg/resource"
)

const cedarNamespace = "LakeGate"

// concreteTokens is the action vocabulary the any-access wildcard expands
// over: Cedar has no wildcard action in a request, so "_any" is satisfied
// when any one concrete action is permitted.
var concreteTokens = []string{"select", "insert", "delete", "create", "drop", "alter", "all", "admin"}

// CedarEngine is the bundled PolicyEngine backed by Cedar policy
// evaluation. The policy set is parsed once at construction and read-only
// afterwards, so a single engine serves concurrent checks.
type CedarEngine struct {
	policySet *cedar.PolicySet
}

// NewCedarEngine creates a Cedar-backed policy engine.
// If policyBytes is nil, built-in default policies are used.
func NewCedarEngine(policyBytes []byte) (*CedarEngine, error) {
	if policyBytes == nil {
		policyBytes = []byte(defaultPolicies)
	}

	ps, err := cedar.NewPolicySetFromBytes("policies.cedar", policyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Cedar policies: %w", err)
	}

	return &CedarEngine{policySet: ps}, nil
}

// NewCedarEngineFromFile creates a Cedar-backed policy engine from a policy
// file.
func NewCedarEngineFromFile(path string) (*CedarEngine, error) {
	policyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Cedar policy file: %w", err)
	}
	return NewCedarEngine(policyBytes)
}

// IsAccessAllowed evaluates the request against the policy set. The
// requester becomes a User entity with its groups as parent Group entities;
// the resource becomes an entity at its deepest specified level, parented up
// the catalog hierarchy so policies can scope rules with "in".
func (e *CedarEngine) IsAccessAllowed(ctx context.Context, req Request) (Decision, error) {
	_ = ctx // evaluation is in-process and does not block

	if req.Access == AnyAccess {
		var reasons []string
		for _, token := range concreteTokens {
			decision := e.evaluate(req, token)
			reasons = append(reasons, decision.Reasons...)
			if decision.Allowed {
				return Decision{Allowed: true, Reasons: decision.Reasons}, nil
			}
		}
		return Decision{Reasons: reasons}, nil
	}

	return e.evaluate(req, req.Access), nil
}

func (e *CedarEngine) evaluate(req Request, token string) Decision {
	entities := cedar.EntityMap{}

	principalUID := cedar.NewEntityUID(cedar.EntityType(cedarNamespace+"::User"), cedar.String(req.User))
	groupUIDs := make([]cedar.EntityUID, 0, len(req.Groups))
	for _, group := range req.Groups {
		groupUID := cedar.NewEntityUID(cedar.EntityType(cedarNamespace+"::Group"), cedar.String(group))
		groupUIDs = append(groupUIDs, groupUID)
		entities[groupUID] = cedar.Entity{UID: groupUID}
	}
	entities[principalUID] = cedar.Entity{
		UID:     principalUID,
		Parents: cedar.NewEntityUIDSet(groupUIDs...),
	}

	resourceUID := addResourceEntities(entities, req.Resource)
	actionUID := cedar.NewEntityUID(cedar.EntityType(cedarNamespace+"::Action"), cedar.String(token))

	cedarReq := cedar.Request{
		Principal: principalUID,
		Action:    actionUID,
		Resource:  resourceUID,
		Context:   cedar.NewRecord(cedar.RecordMap{}),
	}

	decision, diagnostic := cedar.Authorize(e.policySet, entities, cedarReq)

	var reasons []string
	for _, r := range diagnostic.Reasons {
		reasons = append(reasons, string(r.PolicyID))
	}

	return Decision{
		Allowed: decision == cedar.Allow,
		Reasons: reasons,
	}
}

// addResourceEntities materializes the resource's hierarchy chain as Cedar
// entities with parent edges and returns the UID of the deepest specified
// level. The root resource maps to a singleton System entity.
func addResourceEntities(entities cedar.EntityMap, res resource.Resource) cedar.EntityUID {
	if !res.Catalog.Specified() {
		uid := cedar.NewEntityUID(cedar.EntityType(cedarNamespace+"::System"), cedar.String("system"))
		entities[uid] = cedar.Entity{UID: uid}
		return uid
	}

	attrs := cedar.RecordMap{}
	chain := []struct {
		entityType string
		level      resource.Level
		key        string
	}{
		{entityType: "Catalog", level: res.Catalog, key: resource.KeyCatalog},
		{entityType: "Schema", level: res.Schema, key: resource.KeySchema},
		{entityType: "Table", level: res.Table, key: resource.KeyTable},
		{entityType: "Column", level: res.Column, key: resource.KeyColumn},
	}

	var uid, parent cedar.EntityUID
	path := ""
	for _, link := range chain {
		value, ok := link.level.Value()
		if !ok {
			break
		}
		if path != "" {
			path += "."
		}
		path += value
		attrs[cedar.String(link.key)] = cedar.String(value)

		uid = cedar.NewEntityUID(cedar.EntityType(cedarNamespace+"::"+link.entityType), cedar.String(path))
		entity := cedar.Entity{UID: uid, Attributes: cedar.NewRecord(attrs)}
		if parent != (cedar.EntityUID{}) {
			entity.Parents = cedar.NewEntityUIDSet(parent)
		}
		entities[uid] = entity
		parent = uid

		// Copy before extending so deeper levels cannot mutate the
		// attribute set already captured by a shallower entity.
		next := cedar.RecordMap{}
		for k, v := range attrs {
			next[k] = v
		}
		attrs = next
	}

	return uid
}
