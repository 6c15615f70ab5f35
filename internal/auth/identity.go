package auth

import (
	"slices"

	"github.com/google/uuid"
)

// Identity is the request-scoped authenticated actor, resolved once from a
// valid access token and passed explicitly into every service call. It is
// never persisted and never stored in ambient state.
type Identity struct {
	UserID    uuid.UUID
	Login     string
	Authority string
	GroupIDs  []uuid.UUID
}

// Scope returns the group visibility scope for this identity.
func (i *Identity) Scope() GroupScope {
	return NewGroupScope(i.GroupIDs)
}

// GroupScope is the set of group ids an identity may see or act within.
// It is a pure function of the membership snapshot it was built from.
type GroupScope struct {
	ids map[uuid.UUID]struct{}
}

// NewGroupScope builds a scope from a membership snapshot.
func NewGroupScope(groupIDs []uuid.UUID) GroupScope {
	ids := make(map[uuid.UUID]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		ids[id] = struct{}{}
	}
	return GroupScope{ids: ids}
}

// IsAccessible reports whether the given group is within scope.
func (s GroupScope) IsAccessible(groupID uuid.UUID) bool {
	_, ok := s.ids[groupID]
	return ok
}

// AccessibleGroupIDs returns the scoped group ids in stable order.
func (s GroupScope) AccessibleGroupIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

// SuggestionResolver decides whether an identity may resolve (accept or
// reject) suggestions in the given group. The rule is deliberately pluggable;
// deployments differ on who counts as privileged.
type SuggestionResolver func(identity *Identity, groupID uuid.UUID) bool

// ResolveByAuthority returns the default resolution rule: the actor must be
// a member of the group and originate from the trusted authority.
func ResolveByAuthority(trusted string) SuggestionResolver {
	return func(identity *Identity, groupID uuid.UUID) bool {
		if identity == nil || identity.Authority != trusted {
			return false
		}
		return identity.Scope().IsAccessible(groupID)
	}
}
