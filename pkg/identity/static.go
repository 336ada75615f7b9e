package identity

import "context"

// StaticResolver serves group memberships from a fixed in-memory mapping,
// typically loaded from configuration. An unknown user has no groups; that
// is not an error.
type StaticResolver struct {
	groups map[string][]string
}

// NewStaticResolver creates a StaticResolver from a user to groups mapping.
// The mapping is copied; later mutation of the argument has no effect.
func NewStaticResolver(groups map[string][]string) *StaticResolver {
	copied := make(map[string][]string, len(groups))
	for user, gs := range groups {
		copied[user] = append([]string(nil), gs...)
	}
	return &StaticResolver{groups: copied}
}

// GroupsOf returns the configured groups for the user, or an empty set.
func (r *StaticResolver) GroupsOf(_ context.Context, user string) ([]string, error) {
	gs, ok := r.groups[user]
	if !ok {
		return []string{}, nil
	}
	return append([]string(nil), gs...), nil
}
