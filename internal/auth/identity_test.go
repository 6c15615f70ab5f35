package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestGroupScope_IsAccessible(t *testing.T) {
	t.Parallel()

	g1, g2, g3 := uuid.New(), uuid.New(), uuid.New()
	scope := NewGroupScope([]uuid.UUID{g1, g2})

	if !scope.IsAccessible(g1) || !scope.IsAccessible(g2) {
		t.Error("member groups should be accessible")
	}
	if scope.IsAccessible(g3) {
		t.Error("non-member group should not be accessible")
	}
}

func TestGroupScope_Empty(t *testing.T) {
	t.Parallel()

	scope := NewGroupScope(nil)
	if scope.IsAccessible(uuid.New()) {
		t.Error("empty scope should not grant access")
	}
	if got := scope.AccessibleGroupIDs(); len(got) != 0 {
		t.Errorf("empty scope should have no group ids, got %d", len(got))
	}
}

func TestGroupScope_AccessibleGroupIDs_StableOrder(t *testing.T) {
	t.Parallel()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	a := NewGroupScope(ids).AccessibleGroupIDs()
	b := NewGroupScope([]uuid.UUID{ids[2], ids[0], ids[1]}).AccessibleGroupIDs()

	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 ids, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("AccessibleGroupIDs should be insertion-order independent")
		}
	}
}

func TestResolveByAuthority(t *testing.T) {
	t.Parallel()

	group := uuid.New()
	resolver := ResolveByAuthority("publisher.example.org")

	member := &Identity{
		UserID:    uuid.New(),
		Authority: "publisher.example.org",
		GroupIDs:  []uuid.UUID{group},
	}
	if !resolver(member, group) {
		t.Error("trusted-authority group member should resolve suggestions")
	}

	outsider := &Identity{
		UserID:    uuid.New(),
		Authority: "publisher.example.org",
		GroupIDs:  []uuid.UUID{uuid.New()},
	}
	if resolver(outsider, group) {
		t.Error("non-member should not resolve suggestions")
	}

	untrusted := &Identity{
		UserID:    uuid.New(),
		Authority: "thirdparty.example.com",
		GroupIDs:  []uuid.UUID{group},
	}
	if resolver(untrusted, group) {
		t.Error("member from untrusted authority should not resolve suggestions")
	}

	if resolver(nil, group) {
		t.Error("nil identity should never resolve suggestions")
	}
}
