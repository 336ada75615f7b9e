package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultGroupsClaim is the claim consulted for group membership when the
// host does not configure one.
const DefaultGroupsClaim = "groups"

// ClaimsResolver derives identities from the claims of already-verified
// tokens, for hosts that authenticate requests with tokens instead of bare
// principal strings. The claim consulted for group membership is fixed at
// construction, typically from configuration.
type ClaimsResolver struct {
	groupsClaim string
}

// NewClaimsResolver creates a ClaimsResolver consulting the given claim for
// group membership. An empty claim name falls back to DefaultGroupsClaim.
func NewClaimsResolver(groupsClaim string) *ClaimsResolver {
	if groupsClaim == "" {
		groupsClaim = DefaultGroupsClaim
	}
	return &ClaimsResolver{groupsClaim: groupsClaim}
}

// Resolve builds an Identity from token claims. Token verification is the
// host's concern.
func (r *ClaimsResolver) Resolve(claims jwt.MapClaims) (Identity, error) {
	return FromClaims(claims, r.groupsClaim)
}

// FromClaims builds an Identity from the claims of an already-verified token.
// The subject claim supplies the principal; groupsClaim (or the default)
// supplies the membership set. Token verification is the host's concern.
func FromClaims(claims jwt.MapClaims, groupsClaim string) (Identity, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, &ResolutionError{Err: fmt.Errorf("token has no subject claim")}
	}

	return Identity{
		User:   ShortName(sub),
		Groups: GroupsFromClaims(claims, groupsClaim),
	}, nil
}

// GroupsFromClaims extracts group membership from token claims. It handles
// both the string-array form and the space-separated string form that
// different identity providers emit. A missing or malformed claim yields an
// empty set.
func GroupsFromClaims(claims jwt.MapClaims, groupsClaim string) []string {
	if groupsClaim == "" {
		groupsClaim = DefaultGroupsClaim
	}

	switch v := claims[groupsClaim].(type) {
	case []any:
		groups := make([]string, 0, len(v))
		for _, g := range v {
			if s, ok := g.(string); ok {
				groups = append(groups, s)
			}
		}
		return groups
	case []string:
		return append([]string(nil), v...)
	case string:
		if v == "" {
			return []string{}
		}
		return strings.Fields(v)
	default:
		return []string{}
	}
}
